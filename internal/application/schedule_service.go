package application

import (
	"fmt"
	"sync"

	"github.com/felixgeelhaar/studyflow/internal/domain"
	"github.com/felixgeelhaar/studyflow/internal/domain/policy"
	"github.com/felixgeelhaar/studyflow/internal/domain/schedule"
	"github.com/google/uuid"
)

func newPlanID() string { return uuid.New().String() }

// ScheduleService exposes the read-side queries (classification view,
// unscheduled-hours accounting, missed-session collection) and drives the
// redistribution engine. Reads work on a snapshot and are safe to run
// concurrently; Redistribute serializes through the mutex shared with
// SessionService.
type ScheduleService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
	clock schedule.Clock
	guard policy.LockGuard
	mu    *sync.Mutex
}

func NewScheduleService(repo domain.WorkspaceRepository, audit domain.AuditLogger, clock schedule.Clock, mu *sync.Mutex) *ScheduleService {
	if clock == nil {
		clock = schedule.SystemClock{}
	}
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &ScheduleService{repo: repo, audit: audit, clock: clock, mu: mu}
}

// DayView is one day's sessions with their derived statuses.
type DayView struct {
	Date     string
	IsLocked bool
	Sessions []SessionView
}

// SessionView pairs a session with its classification and task title.
type SessionView struct {
	Session   schedule.StudySession
	Status    schedule.DisplayStatus
	TaskTitle string
}

// Day classifies every session on a date against the current clock.
func (s *ScheduleService) Day(date string) (*DayView, error) {
	plans, err := s.repo.LoadPlans()
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.LoadTasks()
	if err != nil {
		return nil, err
	}
	idx := schedule.TaskIndex(tasks)

	view := &DayView{Date: date}
	now := s.clock.Now()
	for i := range plans {
		if plans[i].Date != date {
			continue
		}
		view.IsLocked = plans[i].IsLocked
		for _, session := range plans[i].PlannedTasks {
			sv := SessionView{
				Session: session,
				Status:  schedule.Classify(session, date, now),
			}
			if task, ok := idx[session.TaskID]; ok {
				sv.TaskTitle = task.Title
			}
			view.Sessions = append(view.Sessions, sv)
		}
	}
	return view, nil
}

// CollectMissed builds the redistribution worklist without mutating
// anything.
func (s *ScheduleService) CollectMissed() ([]schedule.MissedItem, error) {
	plans, err := s.repo.LoadPlans()
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.LoadTasks()
	if err != nil {
		return nil, err
	}
	return schedule.CollectMissed(tasks, plans, s.clock.Now()), nil
}

// UnscheduledHours totals the unassigned effort over pending tasks.
func (s *ScheduleService) UnscheduledHours() (float64, error) {
	plans, err := s.repo.LoadPlans()
	if err != nil {
		return 0, err
	}
	tasks, err := s.repo.LoadTasks()
	if err != nil {
		return 0, err
	}
	return schedule.TotalUnscheduledHours(tasks, plans), nil
}

// Redistribute collects the missed worklist and rewrites future plan
// assignments in the requested mode. Placements that succeed are committed
// even when others fail; the report carries both. With dryRun set, the
// mutated plan set is discarded and only the report is returned.
func (s *ScheduleService) Redistribute(mode schedule.Mode, dryRun bool, actor string) (*schedule.PlacementReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans, err := s.repo.LoadPlans()
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.LoadTasks()
	if err != nil {
		return nil, err
	}
	settings, err := s.repo.LoadSettings()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = domain.DefaultSettings()
	}
	commitments, err := s.repo.LoadCommitments()
	if err != nil {
		return nil, fmt.Errorf("load commitments: %w", err)
	}

	now := s.clock.Now()
	worklist := schedule.CollectMissed(tasks, plans, now)

	set := schedule.NewPlanSet(plans)
	set.NewID = newPlanID
	engine := &schedule.Engine{
		DailyBudget: settings.DailyStudyHours,
		DayStart:    settings.DayStart,
		DayEnd:      settings.DayEnd,
		HorizonDays: settings.HorizonDays,
		Commitments: commitments,
		LockCheck:   s.guard.Check,
	}

	report := engine.Redistribute(set, worklist, mode, now)

	if dryRun {
		return report, nil
	}
	if err := s.repo.SavePlans(set.Plans()); err != nil {
		return nil, err
	}
	if s.audit != nil {
		if err := s.audit.Log("schedule.redistribute", actor, map[string]interface{}{
			"mode":     string(mode),
			"placed":   len(report.Placed),
			"unplaced": len(report.Unplaced),
		}); err != nil {
			return nil, err
		}
	}
	return report, nil
}
