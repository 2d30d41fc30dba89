package participants

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name       string
		bookings   []domain.Booking
		configured []string
		want       domain.ParticipantsByDate
	}{
		{
			name: "sums adults and children per slot",
			bookings: []domain.Booking{
				{Date: "2025-06-01", Time: "10:00", Adults: 2, Children: 1},
				{Date: "2025-06-01", Time: "10:00", Adults: 1, Children: 0},
			},
			configured: []string{"10:00", "14:00"},
			want:       domain.ParticipantsByDate{"2025-06-01": {"10:00": 4, "14:00": 0}},
		},
		{
			name: "infants excluded",
			bookings: []domain.Booking{
				{Date: "2025-06-01", Time: "14:00", Adults: 2, Infants: 2},
			},
			configured: []string{"10:00", "14:00"},
			want:       domain.ParticipantsByDate{"2025-06-01": {"10:00": 0, "14:00": 2}},
		},
		{
			name: "missing date or time skipped",
			bookings: []domain.Booking{
				{Date: "", Time: "10:00", Adults: 3},
				{Date: "2025-06-02", Time: "", Adults: 3},
				{Date: "2025-06-03", Time: "10:00", Adults: 1},
			},
			configured: []string{"10:00"},
			want:       domain.ParticipantsByDate{"2025-06-03": {"10:00": 1}},
		},
		{
			name: "unconfigured slot still counted",
			bookings: []domain.Booking{
				{Date: "2025-06-01", Time: "16:30", Adults: 2},
			},
			configured: []string{"10:00"},
			want:       domain.ParticipantsByDate{"2025-06-01": {"10:00": 0, "16:30": 2}},
		},
		{
			name:       "no bookings",
			bookings:   nil,
			configured: []string{"10:00"},
			want:       domain.ParticipantsByDate{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.bookings, tt.configured))
		})
	}
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	bookings := []domain.Booking{{Date: "2025-06-01", Time: "10:00", Adults: 2}}
	configured := []string{"10:00", "14:00"}

	first := Build(bookings, configured)
	first["2025-06-01"]["10:00"] = 99

	second := Build(bookings, configured)
	assert.Equal(t, 2, second["2025-06-01"]["10:00"])
	assert.Equal(t, []domain.Booking{{Date: "2025-06-01", Time: "10:00", Adults: 2}}, bookings)
	assert.Equal(t, []string{"10:00", "14:00"}, configured)
}

func TestConfirmedOnly(t *testing.T) {
	bookings := []domain.Booking{
		{ID: 1, Status: domain.StatusConfirmed},
		{ID: 2, Status: domain.StatusPending},
		{ID: 3, Status: domain.StatusCancelled},
		{ID: 4, Status: domain.StatusConfirmed},
	}

	got := ConfirmedOnly(bookings)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
}
