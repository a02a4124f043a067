package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Commitment is a fixed external obligation that blocks a time range on a
// specific date or on a recurring weekday. Commitments are configured input;
// this package only reads them for conflict detection.
type Commitment struct {
	Title     string `yaml:"title"`
	Date      string `yaml:"date,omitempty"`    // ISO date, one-off
	Weekday   string `yaml:"weekday,omitempty"` // "monday".."sunday", recurring
	StartTime string `yaml:"start_time"`
	EndTime   string `yaml:"end_time"`
}

// CommitmentSet is the full configured commitment list.
type CommitmentSet []Commitment

// Interval is a half-open [Start, End) time-of-day range in minutes since
// midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// ParseClock converts a "15:04" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("parse clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes since midnight back to a "15:04" string.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ForDate returns the busy intervals the set imposes on a calendar date.
// Malformed entries are ignored rather than failing the whole lookup.
func (cs CommitmentSet) ForDate(date string) []Interval {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil
	}
	weekday := strings.ToLower(day.Weekday().String())

	var busy []Interval
	for _, c := range cs {
		if c.Date != "" && c.Date != date {
			continue
		}
		if c.Date == "" && !strings.EqualFold(c.Weekday, weekday) {
			continue
		}
		start, err := ParseClock(c.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(c.EndTime)
		if err != nil || end <= start {
			continue
		}
		busy = append(busy, Interval{Start: start, End: end})
	}
	return busy
}
