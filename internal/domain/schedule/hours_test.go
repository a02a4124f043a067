package schedule_test

import (
	"testing"

	"github.com/felixgeelhaar/studyflow/internal/domain/schedule"
)

func TestUnscheduledHours(t *testing.T) {
	task := schedule.Task{ID: "t1", EstimatedHours: 5, Status: schedule.TaskPending}

	plans := []schedule.StudyPlan{
		{Date: "2024-01-01", PlannedTasks: []schedule.StudySession{
			{TaskID: "t1", SessionNumber: 1, AllocatedHours: 2},
			{TaskID: "other", SessionNumber: 1, AllocatedHours: 3},
		}},
		{Date: "2024-01-02", PlannedTasks: []schedule.StudySession{
			{TaskID: "t1", SessionNumber: 2, AllocatedHours: 1},
		}},
	}

	if got := schedule.UnscheduledHours(task, plans); got != 2 {
		t.Errorf("UnscheduledHours = %v, want 2", got)
	}
}

func TestUnscheduledHours_SkippedSessionsDoNotCount(t *testing.T) {
	task := schedule.Task{ID: "t1", EstimatedHours: 5, Status: schedule.TaskPending}
	plans := []schedule.StudyPlan{
		{Date: "2024-01-01", PlannedTasks: []schedule.StudySession{
			{TaskID: "t1", SessionNumber: 1, AllocatedHours: 2, Status: schedule.SessionSkipped},
		}},
	}

	if got := schedule.UnscheduledHours(task, plans); got != 5 {
		t.Errorf("UnscheduledHours = %v, want 5 (skipped hours are not scheduled)", got)
	}
}

func TestUnscheduledHours_NeverNegative(t *testing.T) {
	task := schedule.Task{ID: "t1", EstimatedHours: 1, Status: schedule.TaskPending}
	plans := []schedule.StudyPlan{
		{Date: "2024-01-01", PlannedTasks: []schedule.StudySession{
			{TaskID: "t1", SessionNumber: 1, AllocatedHours: 4},
		}},
	}

	if got := schedule.UnscheduledHours(task, plans); got != 0 {
		t.Errorf("UnscheduledHours = %v, want 0", got)
	}
}

func TestUnscheduledHours_MonotonicallyNonIncreasing(t *testing.T) {
	task := schedule.Task{ID: "t1", EstimatedHours: 6, Status: schedule.TaskPending}
	var plans []schedule.StudyPlan

	prev := schedule.UnscheduledHours(task, plans)
	for i := 1; i <= 8; i++ {
		plans = append(plans, schedule.StudyPlan{
			Date: "2024-01-01",
			PlannedTasks: []schedule.StudySession{
				{TaskID: "t1", SessionNumber: i, AllocatedHours: 1},
			},
		})
		cur := schedule.UnscheduledHours(task, plans)
		if cur > prev {
			t.Fatalf("remaining hours increased after adding a session: %v > %v", cur, prev)
		}
		if cur < 0 {
			t.Fatalf("remaining hours negative: %v", cur)
		}
		prev = cur
	}
}

func TestTotalUnscheduledHours_PendingOnly(t *testing.T) {
	tasks := []schedule.Task{
		{ID: "t1", EstimatedHours: 3, Status: schedule.TaskPending},
		{ID: "t2", EstimatedHours: 10, Status: schedule.TaskCompleted},
		{ID: "t3", EstimatedHours: 2, Status: schedule.TaskCancelled},
	}

	if got := schedule.TotalUnscheduledHours(tasks, nil); got != 3 {
		t.Errorf("TotalUnscheduledHours = %v, want 3 (non-pending tasks excluded)", got)
	}
}
