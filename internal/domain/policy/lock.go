package policy

import (
	"github.com/felixgeelhaar/studyflow/internal/domain/schedule"
)

// LockGuard is the single shared check every mutating operation consults
// before touching a plan day. It has no state of its own; it reads the
// plan's lock flag at call time, so a day locked between snapshot and
// mutation is still caught.
type LockGuard struct{}

// Check rejects the mutation when the target day is locked. A nil plan
// (day not yet created) is unlocked by definition.
func (LockGuard) Check(p *schedule.StudyPlan) error {
	if p != nil && p.IsLocked {
		return &schedule.LockedDayError{Date: p.Date}
	}
	return nil
}

// ToggleLock flips the day lock unconditionally and returns the new state.
// The toggle is the one mutation exempt from Check.
func (LockGuard) ToggleLock(p *schedule.StudyPlan) bool {
	p.IsLocked = !p.IsLocked
	return p.IsLocked
}
