package schedule

import "time"

// DisplayStatus is the derived lifecycle state of a session. It is never
// stored; Classify recomputes it from the stored flags, the plan date and
// the clock on every query, so a session becomes "missed" the instant its
// day rolls past without any write.
type DisplayStatus string

const (
	StatusCompleted   DisplayStatus = "completed"
	StatusSkipped     DisplayStatus = "skipped"
	StatusMissed      DisplayStatus = "missed"
	StatusOverdue     DisplayStatus = "overdue"
	StatusRescheduled DisplayStatus = "rescheduled"
	StatusScheduled   DisplayStatus = "scheduled"
)

// Terminal reports whether the status is an explicit user or engine decision
// that time passage must never reclassify.
func (s DisplayStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusSkipped
}

// Classify derives the displayed lifecycle state of a session. Pure and
// total: any session and instant map to exactly one status.
//
// Precedence, first match wins:
//  1. done flag or stored completed status
//  2. stored skipped status
//  3. plan date before today        -> missed
//  4. today, end time already past  -> overdue
//  5. manual override               -> rescheduled
//  6. otherwise                     -> scheduled
func Classify(s StudySession, planDate string, now time.Time) DisplayStatus {
	if s.Completed() {
		return StatusCompleted
	}
	if s.Status == SessionSkipped {
		return StatusSkipped
	}

	today := Today(now)
	if planDate < today {
		return StatusMissed
	}
	if planDate == today && s.EndTime != "" && ClockTime(now) >= s.EndTime {
		return StatusOverdue
	}
	if s.IsManualOverride {
		return StatusRescheduled
	}
	return StatusScheduled
}
