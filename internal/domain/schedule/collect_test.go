package schedule_test

import (
	"testing"

	"github.com/felixgeelhaar/studyflow/internal/domain/schedule"
)

func TestCollectMissed(t *testing.T) {
	now := at("2024-01-05", "12:00")
	tasks := []schedule.Task{
		{ID: "t1", Title: "Math", EstimatedHours: 4, Status: schedule.TaskPending},
		{ID: "t2", Title: "Done already", EstimatedHours: 2, Status: schedule.TaskCompleted},
	}
	plans := []schedule.StudyPlan{
		{Date: "2024-01-01", PlannedTasks: []schedule.StudySession{
			{TaskID: "t1", SessionNumber: 1, AllocatedHours: 2},
			{TaskID: "t2", SessionNumber: 1, AllocatedHours: 2},
		}},
		{Date: "2024-01-05", PlannedTasks: []schedule.StudySession{
			{TaskID: "t1", SessionNumber: 2, AllocatedHours: 1, StartTime: "09:00", EndTime: "10:00"},
		}},
	}

	worklist := schedule.CollectMissed(tasks, plans, now)
	if len(worklist) != 1 {
		t.Fatalf("worklist length = %d, want 1", len(worklist))
	}
	item := worklist[0]
	if item.Task.ID != "t1" || item.PlanDate != "2024-01-01" || item.Session.SessionNumber != 1 {
		t.Errorf("unexpected worklist entry: %+v", item)
	}
}

func TestCollectMissed_SkipsTerminalSessions(t *testing.T) {
	now := at("2024-01-05", "12:00")
	tasks := []schedule.Task{{ID: "t1", EstimatedHours: 4, Status: schedule.TaskPending}}
	plans := []schedule.StudyPlan{
		{Date: "2024-01-01", PlannedTasks: []schedule.StudySession{
			{TaskID: "t1", SessionNumber: 1, AllocatedHours: 1, Done: true},
			{TaskID: "t1", SessionNumber: 2, AllocatedHours: 1, Status: schedule.SessionSkipped},
			{TaskID: "t1", SessionNumber: 3, AllocatedHours: 1},
		}},
	}

	worklist := schedule.CollectMissed(tasks, plans, now)
	if len(worklist) != 1 || worklist[0].Session.SessionNumber != 3 {
		t.Fatalf("expected only the unmarked session, got %+v", worklist)
	}
}

func TestCollectMissed_OrphanedSessionsIgnored(t *testing.T) {
	now := at("2024-01-05", "12:00")
	plans := []schedule.StudyPlan{
		{Date: "2024-01-01", PlannedTasks: []schedule.StudySession{
			{TaskID: "deleted-task", SessionNumber: 1, AllocatedHours: 2},
		}},
	}

	worklist := schedule.CollectMissed(nil, plans, now)
	if len(worklist) != 0 {
		t.Fatalf("orphaned session must be skipped, got %+v", worklist)
	}
}

func TestCollectMissed_OrderIsDateThenSessionOrder(t *testing.T) {
	now := at("2024-01-10", "12:00")
	tasks := []schedule.Task{
		{ID: "t1", EstimatedHours: 10, Status: schedule.TaskPending},
		{ID: "t2", EstimatedHours: 10, Status: schedule.TaskPending},
	}
	// Plans deliberately out of date order.
	plans := []schedule.StudyPlan{
		{Date: "2024-01-03", PlannedTasks: []schedule.StudySession{
			{TaskID: "t2", SessionNumber: 1, AllocatedHours: 1},
		}},
		{Date: "2024-01-01", PlannedTasks: []schedule.StudySession{
			{TaskID: "t1", SessionNumber: 1, AllocatedHours: 1},
			{TaskID: "t2", SessionNumber: 2, AllocatedHours: 1},
		}},
	}

	worklist := schedule.CollectMissed(tasks, plans, now)
	if len(worklist) != 3 {
		t.Fatalf("worklist length = %d, want 3", len(worklist))
	}
	if worklist[0].PlanDate != "2024-01-01" || worklist[0].Task.ID != "t1" {
		t.Errorf("first entry wrong: %+v", worklist[0])
	}
	if worklist[1].PlanDate != "2024-01-01" || worklist[1].Task.ID != "t2" {
		t.Errorf("second entry wrong: %+v", worklist[1])
	}
	if worklist[2].PlanDate != "2024-01-03" {
		t.Errorf("third entry wrong: %+v", worklist[2])
	}
}

func TestCollectMissed_DoesNotMutatePlans(t *testing.T) {
	now := at("2024-01-05", "12:00")
	tasks := []schedule.Task{{ID: "t1", EstimatedHours: 4, Status: schedule.TaskPending}}
	plans := []schedule.StudyPlan{
		{Date: "2024-01-01", PlannedTasks: []schedule.StudySession{
			{TaskID: "t1", SessionNumber: 1, AllocatedHours: 2},
		}},
	}

	schedule.CollectMissed(tasks, plans, now)
	if plans[0].PlannedTasks[0].Status != "" {
		t.Error("collector must not touch session status")
	}
}
