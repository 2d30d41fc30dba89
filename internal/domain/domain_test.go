package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCutoffPolicy_EffectiveCutoffHours(t *testing.T) {
	tests := []struct {
		name            string
		policy          CutoffPolicy
		withParticipant bool
		want            float64
	}{
		{name: "plain cutoff", policy: CutoffPolicy{CancellationCutoffHours: 12}, want: 12},
		{name: "escalated cutoff", policy: CutoffPolicy{CancellationCutoffHours: 24, CancellationCutoffHoursWithParticipant: 48}, withParticipant: true, want: 48},
		{name: "unset defaults to 24", policy: CutoffPolicy{}, want: 24},
		{name: "unset with participant defaults to 24", policy: CutoffPolicy{CancellationCutoffHours: 6}, withParticipant: true, want: 24},
		{name: "negative defaults to 24", policy: CutoffPolicy{CancellationCutoffHours: -3}, want: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.EffectiveCutoffHours(tt.withParticipant))
		})
	}
}

func TestTour_InventoryKeyAndCapacity(t *testing.T) {
	tour := Tour{ID: "sunset-cruise"}
	assert.Equal(t, "sunset-cruise", tour.InventoryKey())
	assert.Equal(t, DefaultMaxSlots, tour.Capacity())

	tour.ProductKey = "PRD-42"
	tour.MaxSlots = 6
	assert.Equal(t, "PRD-42", tour.InventoryKey())
	assert.Equal(t, 6, tour.Capacity())
}

func TestBooking_CapacityCount(t *testing.T) {
	b := Booking{Adults: 2, Children: 1, Infants: 3, Status: StatusConfirmed}
	assert.Equal(t, 3, b.CapacityCount())
	assert.True(t, b.IsConfirmed())

	malformed := Booking{Adults: -1, Children: 2}
	assert.Equal(t, 2, malformed.CapacityCount())
	assert.False(t, malformed.IsConfirmed())
}

func TestDateAvailabilityRecord_CloneIsDeep(t *testing.T) {
	spots := 5
	rec := DateAvailabilityRecord{
		Date:      "2025-06-01",
		TimeSlots: []TimeSlot{{Time: "10:00", AvailableSpots: &spots}, {Time: "14:00"}},
	}

	clone := rec.Clone()
	*clone.TimeSlots[0].AvailableSpots = 0
	clone.TimeSlots[1].Time = "15:00"

	assert.Equal(t, 5, *rec.TimeSlots[0].AvailableSpots)
	assert.Equal(t, "14:00", rec.TimeSlots[1].Time)
	assert.Nil(t, clone.TimeSlots[1].AvailableSpots)
}

func TestDateAvailabilityRecord_IsFresh(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := DateAvailabilityRecord{FetchedAt: now.Add(-10 * time.Minute)}

	assert.True(t, rec.IsFresh(now, 15*time.Minute))
	assert.False(t, rec.IsFresh(now, 5*time.Minute))
}

func TestParticipantsByDate_Count(t *testing.T) {
	p := ParticipantsByDate{"2025-06-01": {"10:00": 4}}
	assert.Equal(t, 4, p.Count("2025-06-01", "10:00"))
	assert.Equal(t, 0, p.Count("2025-06-01", "14:00"))
	assert.Equal(t, 0, p.Count("2025-06-02", "10:00"))
}

func TestPartySize(t *testing.T) {
	p := PartySize{Adults: 2, Children: 1, Infants: 1}
	assert.Equal(t, 3, p.CapacityCount())
}

func TestConfiguredTimeSlots(t *testing.T) {
	slots := ConfiguredTimeSlots([]string{"10:00", "14:00"})
	assert.Equal(t, []TimeSlot{{Time: "10:00"}, {Time: "14:00"}}, slots)
}
