package schedule

// SessionStatus is the stored status of a session. The displayed lifecycle
// state is derived from it together with the plan date and the clock, see
// Classify.
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionSkipped   SessionStatus = "skipped"
)

// StudySession is one scheduled block of work on a task within a plan day.
// A session is addressed everywhere by the composite key
// (plan date, session number, task ID).
type StudySession struct {
	TaskID         string        `json:"task_id"`
	SessionNumber  int           `json:"session_number"`
	AllocatedHours float64       `json:"allocated_hours"`
	StartTime      string        `json:"start_time,omitempty"` // "15:04"
	EndTime        string        `json:"end_time,omitempty"`
	Status         SessionStatus `json:"status,omitempty"`
	// Done predates Status in the stored format; either signals completion.
	Done             bool `json:"done,omitempty"`
	IsManualOverride bool `json:"is_manual_override,omitempty"`
}

// Completed reports whether either completion flag is set.
func (s *StudySession) Completed() bool {
	return s.Done || s.Status == SessionCompleted
}

// StudyPlan is one calendar day's schedule. Session order inside PlannedTasks
// is insertion order and is preserved by every operation.
type StudyPlan struct {
	ID           string         `json:"id"`
	Date         string         `json:"date"` // ISO "2006-01-02", string-comparable
	PlannedTasks []StudySession `json:"planned_tasks"`
	IsLocked     bool           `json:"is_locked,omitempty"`
}

// AllocatedHours sums the hours of non-skipped sessions on this day.
func (p *StudyPlan) AllocatedHours() float64 {
	var total float64
	for i := range p.PlannedTasks {
		if p.PlannedTasks[i].Status == SessionSkipped {
			continue
		}
		total += p.PlannedTasks[i].AllocatedHours
	}
	return total
}

// FindSession returns the index of the session matching the composite key,
// or -1 if no session matches. An empty taskID matches any task, which
// covers callers that only carry (date, session number).
func (p *StudyPlan) FindSession(sessionNumber int, taskID string) int {
	for i := range p.PlannedTasks {
		s := &p.PlannedTasks[i]
		if s.SessionNumber != sessionNumber {
			continue
		}
		if taskID != "" && s.TaskID != taskID {
			continue
		}
		return i
	}
	return -1
}
