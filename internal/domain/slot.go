package domain

import "time"

// TimeSlot represents a time slot reported by the external inventory.
// AvailableSpots == nil means the authoritative count is unknown.
type TimeSlot struct {
	Time           string `json:"time"`
	AvailableSpots *int   `json:"availableSpots"`
}

// DateAvailabilityRecord cached availability of one product on one date
type DateAvailabilityRecord struct {
	Date            string     `json:"date"`
	TimeSlots       []TimeSlot `json:"timeSlots"`
	HasAvailability bool       `json:"hasAvailability"`
	FetchedAt       time.Time  `json:"fetchedAt"`
	IsFallback      bool       `json:"isFallback"` // created after a failed fetch, never trusted for "date is full"
}

// IsFresh returns true if the record is younger than window at now
func (r *DateAvailabilityRecord) IsFresh(now time.Time, window time.Duration) bool {
	return now.Sub(r.FetchedAt) < window
}

// Clone returns a deep copy of the record
func (r DateAvailabilityRecord) Clone() DateAvailabilityRecord {
	if r.TimeSlots == nil {
		return r
	}
	slots := make([]TimeSlot, len(r.TimeSlots))
	for i, s := range r.TimeSlots {
		slots[i] = TimeSlot{Time: s.Time}
		if s.AvailableSpots != nil {
			spots := *s.AvailableSpots
			slots[i].AvailableSpots = &spots
		}
	}
	r.TimeSlots = slots
	return r
}

// ConfiguredTimeSlots builds slots with unknown spot counts from configured times
func ConfiguredTimeSlots(times []string) []TimeSlot {
	slots := make([]TimeSlot, len(times))
	for i, t := range times {
		slots[i] = TimeSlot{Time: t}
	}
	return slots
}

// ParticipantsByDate date -> slot time -> booked participants (adults + children)
type ParticipantsByDate map[string]map[string]int

// Count returns the participants booked for date/slot, 0 when unknown
func (p ParticipantsByDate) Count(date, slot string) int {
	return p[date][slot]
}

// PartySize requested party for a single slot
type PartySize struct {
	Adults   int
	Children int
	Infants  int
}

// CapacityCount seats the party needs (infants do not count against capacity)
func (p PartySize) CapacityCount() int {
	return p.Adults + p.Children
}
