package domain

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// Booking is a read-only view of a booking row owned by the booking store.
// Date and Time may be empty for partially imported rows.
type Booking struct {
	ID       int64
	TourID   string
	Date     string // YYYY-MM-DD
	Time     string // HH:MM
	Adults   int
	Children int
	Infants  int
	Status   BookingStatus
}

// IsConfirmed returns true if the booking holds capacity
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// CapacityCount returns the number of seats the booking occupies (infants excluded)
func (b *Booking) CapacityCount() int {
	return nonNegative(b.Adults) + nonNegative(b.Children)
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
