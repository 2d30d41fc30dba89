package domain

// Default configuration values
const (
	DefaultCutoffHours = 24
	DefaultMaxSlots    = 10
)

// Time format constants
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)
