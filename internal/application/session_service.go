package application

import (
	"fmt"
	"sync"

	"github.com/felixgeelhaar/studyflow/internal/domain"
	"github.com/felixgeelhaar/studyflow/internal/domain/policy"
	"github.com/felixgeelhaar/studyflow/internal/domain/schedule"
)

// SessionService carries out single-session mutations: mark-done, skip,
// reschedule, delete and the day-lock toggle. Every mutation addresses its
// session by the (plan date, session number, task ID) composite key, runs
// against a fresh load of the plan set and is serialized through a mutex
// shared with the redistribution path. A failed mutation leaves all stored
// state unchanged.
type SessionService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
	clock schedule.Clock
	guard policy.LockGuard
	mu    *sync.Mutex
}

func NewSessionService(repo domain.WorkspaceRepository, audit domain.AuditLogger, clock schedule.Clock, mu *sync.Mutex) *SessionService {
	if clock == nil {
		clock = schedule.SystemClock{}
	}
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &SessionService{repo: repo, audit: audit, clock: clock, mu: mu}
}

// locate loads the plan set and resolves the composite key. The lock guard
// runs before the session lookup so a locked day is reported as such even
// when the key would not resolve.
func (s *SessionService) locate(set *schedule.PlanSet, date string, sessionNumber int, taskID string) (*schedule.StudyPlan, int, error) {
	plan := set.ByDate(date)
	if err := s.guard.Check(plan); err != nil {
		return nil, 0, err
	}
	if plan == nil {
		return nil, 0, &schedule.NotFoundError{Date: date, SessionNumber: sessionNumber, TaskID: taskID}
	}
	i := plan.FindSession(sessionNumber, taskID)
	if i < 0 {
		return nil, 0, &schedule.NotFoundError{Date: date, SessionNumber: sessionNumber, TaskID: taskID}
	}
	return plan, i, nil
}

// MarkDone sets both completion flags on a session. A session that already
// classifies as missed cannot be completed; it has to be skipped, deleted
// or redistributed instead.
func (s *SessionService) MarkDone(date string, sessionNumber int, taskID string, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans, err := s.repo.LoadPlans()
	if err != nil {
		return err
	}
	set := schedule.NewPlanSet(plans)
	plan, i, err := s.locate(set, date, sessionNumber, taskID)
	if err != nil {
		return err
	}

	session := plan.PlannedTasks[i]
	now := s.clock.Now()
	sm, err := schedule.NewSessionLifecycle(storedStatus(session), sessionKey(date, sessionNumber), func(string, string) bool {
		return schedule.Classify(session, date, now) != schedule.StatusMissed
	})
	if err != nil {
		return err
	}
	if err := sm.Transition(schedule.EventComplete); err != nil {
		return err
	}

	plan.PlannedTasks[i].Status = schedule.SessionCompleted
	plan.PlannedTasks[i].Done = true
	if err := s.repo.SavePlans(set.Plans()); err != nil {
		return err
	}
	return s.logMutation("session.done", actor, date, sessionNumber, plan.PlannedTasks[i].TaskID)
}

// Skip marks a session skipped. Skipping is allowed on missed sessions;
// it is the explicit way to retire them outside of redistribution.
func (s *SessionService) Skip(date string, sessionNumber int, taskID string, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans, err := s.repo.LoadPlans()
	if err != nil {
		return err
	}
	set := schedule.NewPlanSet(plans)
	plan, i, err := s.locate(set, date, sessionNumber, taskID)
	if err != nil {
		return err
	}

	sm, err := schedule.NewSessionLifecycle(storedStatus(plan.PlannedTasks[i]), sessionKey(date, sessionNumber), nil)
	if err != nil {
		return err
	}
	if err := sm.Transition(schedule.EventSkip); err != nil {
		return err
	}

	plan.PlannedTasks[i].Status = schedule.SessionSkipped
	if err := s.repo.SavePlans(set.Plans()); err != nil {
		return err
	}
	return s.logMutation("session.skip", actor, date, sessionNumber, taskID)
}

// Reschedule moves a session to a new start time on its day and flags it as
// manually overridden. The end time keeps the allocated duration.
func (s *SessionService) Reschedule(date string, sessionNumber int, taskID string, newStartTime string, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start, err := schedule.ParseClock(newStartTime)
	if err != nil {
		return &schedule.InvalidTimeError{Value: newStartTime, Reason: "expected HH:MM"}
	}
	if date < schedule.Today(s.clock.Now()) {
		return &schedule.InvalidTimeError{Value: date, Reason: "cannot reschedule onto a past day"}
	}

	plans, err := s.repo.LoadPlans()
	if err != nil {
		return err
	}
	set := schedule.NewPlanSet(plans)
	plan, i, err := s.locate(set, date, sessionNumber, taskID)
	if err != nil {
		return err
	}

	session := &plan.PlannedTasks[i]
	if status := schedule.Classify(*session, date, s.clock.Now()); status.Terminal() {
		return fmt.Errorf("cannot reschedule a %s session", status)
	}

	end := start + int(session.AllocatedHours*60+0.5)
	session.StartTime = schedule.FormatClock(start)
	session.EndTime = schedule.FormatClock(end)
	session.IsManualOverride = true

	if err := s.repo.SavePlans(set.Plans()); err != nil {
		return err
	}
	return s.logMutation("session.reschedule", actor, date, sessionNumber, taskID)
}

// Delete removes a session from its plan. The plan itself persists even
// when emptied, so the day-lock state survives.
func (s *SessionService) Delete(date string, sessionNumber int, taskID string, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans, err := s.repo.LoadPlans()
	if err != nil {
		return err
	}
	set := schedule.NewPlanSet(plans)
	plan, i, err := s.locate(set, date, sessionNumber, taskID)
	if err != nil {
		return err
	}

	plan.PlannedTasks = append(plan.PlannedTasks[:i], plan.PlannedTasks[i+1:]...)
	if err := s.repo.SavePlans(set.Plans()); err != nil {
		return err
	}
	return s.logMutation("session.delete", actor, date, sessionNumber, taskID)
}

// Assign creates a new session for a task on a date, creating the day's
// plan on first assignment. The allocation must be positive and the day
// must be unlocked and not in the past.
func (s *SessionService) Assign(date string, taskID string, hours float64, startTime string, actor string) (*schedule.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if hours <= 0 {
		return nil, fmt.Errorf("allocated hours must be positive, got %v", hours)
	}
	if date < schedule.Today(s.clock.Now()) {
		return nil, &schedule.InvalidTimeError{Value: date, Reason: "cannot assign onto a past day"}
	}
	start, err := schedule.ParseClock(startTime)
	if err != nil {
		return nil, &schedule.InvalidTimeError{Value: startTime, Reason: "expected HH:MM"}
	}

	tasks, err := s.repo.LoadTasks()
	if err != nil {
		return nil, err
	}
	if _, ok := schedule.TaskIndex(tasks)[taskID]; !ok {
		return nil, fmt.Errorf("task not found: %s", taskID)
	}

	plans, err := s.repo.LoadPlans()
	if err != nil {
		return nil, err
	}
	set := schedule.NewPlanSet(plans)
	set.NewID = newPlanID
	if err := s.guard.Check(set.ByDate(date)); err != nil {
		return nil, err
	}

	plan := set.Ensure(date)
	session := schedule.StudySession{
		TaskID:         taskID,
		SessionNumber:  set.NextSessionNumber(taskID),
		AllocatedHours: hours,
		StartTime:      schedule.FormatClock(start),
		EndTime:        schedule.FormatClock(start + int(hours*60+0.5)),
		Status:         schedule.SessionScheduled,
	}
	plan.PlannedTasks = append(plan.PlannedTasks, session)

	if err := s.repo.SavePlans(set.Plans()); err != nil {
		return nil, err
	}
	if err := s.logMutation("session.assign", actor, date, session.SessionNumber, taskID); err != nil {
		return nil, err
	}
	return &session, nil
}

// ToggleLock flips the day lock. The toggle is exempt from the lock guard
// and creates the plan on first use so a day can be locked ahead of any
// session assignment.
func (s *SessionService) ToggleLock(date string, actor string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans, err := s.repo.LoadPlans()
	if err != nil {
		return false, err
	}
	set := schedule.NewPlanSet(plans)
	set.NewID = newPlanID
	plan := set.Ensure(date)
	locked := s.guard.ToggleLock(plan)

	if err := s.repo.SavePlans(set.Plans()); err != nil {
		return false, err
	}
	if s.audit != nil {
		if err := s.audit.Log("day.lock", actor, map[string]interface{}{"date": date, "locked": locked}); err != nil {
			return locked, err
		}
	}
	return locked, nil
}

func (s *SessionService) logMutation(action, actor, date string, sessionNumber int, taskID string) error {
	if s.audit == nil {
		return nil
	}
	return s.audit.Log(action, actor, map[string]interface{}{
		"date":           date,
		"session_number": sessionNumber,
		"task_id":        taskID,
	})
}

func storedStatus(s schedule.StudySession) schedule.SessionStatus {
	if s.Completed() {
		return schedule.SessionCompleted
	}
	if s.Status == schedule.SessionSkipped {
		return schedule.SessionSkipped
	}
	return schedule.SessionScheduled
}

func sessionKey(date string, sessionNumber int) string {
	return fmt.Sprintf("%s/%d", date, sessionNumber)
}
