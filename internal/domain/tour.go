package domain

// CutoffPolicy per-tour booking cutoff rules
type CutoffPolicy struct {
	CancellationCutoffHours                float64
	CancellationCutoffHoursWithParticipant float64
	NextDayCutoffTime                      string // "HH:MM", empty = no next-day rule
}

// EffectiveCutoffHours returns the cutoff applied to a slot.
// Once a slot already holds participants the with-participant rule applies.
// Unset (zero or negative) values fall back to DefaultCutoffHours.
func (p CutoffPolicy) EffectiveCutoffHours(hasExistingParticipants bool) float64 {
	hours := p.CancellationCutoffHours
	if hasExistingParticipants {
		hours = p.CancellationCutoffHoursWithParticipant
	}
	if hours <= 0 {
		return DefaultCutoffHours
	}
	return hours
}

// HasNextDayCutoff returns true if the next-day rule is configured
func (p CutoffPolicy) HasNextDayCutoff() bool {
	return p.NextDayCutoffTime != ""
}

// Tour represents the availability-relevant configuration of a tour
type Tour struct {
	ID             string
	ProductKey     string   // key in the external inventory, empty = ID
	MaxSlots       int      // seats per time slot
	AvailableTimes []string // configured "HH:MM" slots in display order
	Policy         CutoffPolicy
	Price          float64
	Timezone       string // IANA name, empty = service default
}

// InventoryKey returns the product key used for external availability lookups
func (t *Tour) InventoryKey() string {
	if t.ProductKey != "" {
		return t.ProductKey
	}
	return t.ID
}

// Capacity returns the maximum seats per slot
func (t *Tour) Capacity() int {
	if t.MaxSlots <= 0 {
		return DefaultMaxSlots
	}
	return t.MaxSlots
}
