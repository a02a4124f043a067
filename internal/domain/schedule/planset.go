package schedule

import "sort"

// PlanSet is a mutable working copy of the whole plan collection, indexed by
// date. All mutating operations run against one PlanSet snapshot at a time;
// callers serialize access.
type PlanSet struct {
	plans  []*StudyPlan
	byDate map[string]*StudyPlan

	// NewID mints plan IDs for days created on first assignment. Left nil,
	// created plans carry an empty ID and the persistence layer assigns one.
	NewID func() string
}

// NewPlanSet copies the given plans into an indexed working set.
func NewPlanSet(plans []StudyPlan) *PlanSet {
	set := &PlanSet{byDate: make(map[string]*StudyPlan, len(plans))}
	for i := range plans {
		p := plans[i]
		p.PlannedTasks = append([]StudySession(nil), plans[i].PlannedTasks...)
		set.plans = append(set.plans, &p)
		set.byDate[p.Date] = &p
	}
	return set
}

// ByDate returns the plan for a date, or nil if none exists.
func (set *PlanSet) ByDate(date string) *StudyPlan {
	return set.byDate[date]
}

// Ensure returns the plan for a date, creating an empty one on first use.
// Plans persist even when later emptied so the day-lock flag survives.
func (set *PlanSet) Ensure(date string) *StudyPlan {
	if p := set.byDate[date]; p != nil {
		return p
	}
	p := &StudyPlan{Date: date}
	if set.NewID != nil {
		p.ID = set.NewID()
	}
	set.plans = append(set.plans, p)
	set.byDate[date] = p
	return p
}

// Plans flattens the set back to a date-sorted slice for persistence.
func (set *PlanSet) Plans() []StudyPlan {
	out := make([]StudyPlan, 0, len(set.plans))
	for _, p := range set.plans {
		out = append(out, *p)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Date < out[b].Date
	})
	return out
}

// NextSessionNumber returns a fresh session number for a task, one past the
// highest number used by any of its sessions across all plans.
func (set *PlanSet) NextSessionNumber(taskID string) int {
	max := 0
	for _, p := range set.plans {
		for i := range p.PlannedTasks {
			s := &p.PlannedTasks[i]
			if s.TaskID == taskID && s.SessionNumber > max {
				max = s.SessionNumber
			}
		}
	}
	return max + 1
}

// OccupiedIntervals returns the timed, non-skipped session blocks on a date.
// Sessions without times consume capacity but occupy no interval.
func (set *PlanSet) OccupiedIntervals(date string) []Interval {
	p := set.byDate[date]
	if p == nil {
		return nil
	}
	var busy []Interval
	for i := range p.PlannedTasks {
		s := &p.PlannedTasks[i]
		if s.Status == SessionSkipped || s.StartTime == "" || s.EndTime == "" {
			continue
		}
		start, err := ParseClock(s.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(s.EndTime)
		if err != nil || end <= start {
			continue
		}
		busy = append(busy, Interval{Start: start, End: end})
	}
	return busy
}
