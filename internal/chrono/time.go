package chrono

import (
	"time"
)

// TimeAPI is the interface that anything depending on the system clock should use.
type TimeAPI interface {
	// Now returns the current time in the local timezone.
	Now() time.Time
}

// StandardTime is the standard implementation of TimeAPI using the standard library.
type StandardTime struct{}

// NewStandardTime is the constructor of StandardTime.
func NewStandardTime() StandardTime {
	return StandardTime{}
}

func (s StandardTime) Now() time.Time {
	return time.Now()
}

// FixedTime always reports the same instant.
type FixedTime time.Time

func (f FixedTime) Now() time.Time {
	return time.Time(f)
}

// Date returns midnight UTC of the given calendar day, the canonical form
// every query date is kept in so they compare with ==.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Day truncates t to its calendar day, see Date.
func Day(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

const ISODate = "2006-01-02"
