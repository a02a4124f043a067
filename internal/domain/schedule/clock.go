package schedule

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Clock supplies "today" and the wall clock. Production code uses
// SystemClock; tests freeze time with FixedClock.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time { return c.Instant }

// Today formats an instant as an ISO plan date. ISO dates compare
// chronologically as strings, which the whole package relies on.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// ClockTime formats an instant as a time-of-day string comparable against
// session start/end times.
func ClockTime(now time.Time) string {
	return now.Format(TimeLayout)
}
