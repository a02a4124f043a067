package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/studyflow/internal/domain"
	"github.com/felixgeelhaar/studyflow/internal/domain/schedule"
	"github.com/google/uuid"
)

// TaskService manages the backlog the scheduling core consumes. How tasks
// are ranked or decomposed is upstream concern; this service only keeps the
// records the classifier, accountant and engine read.
type TaskService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewTaskService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *TaskService {
	return &TaskService{repo: repo, audit: audit}
}

func (s *TaskService) AddTask(title string, estimatedHours float64, category string, important bool, deadline string, actor string) (*schedule.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("task title must not be empty")
	}
	if estimatedHours <= 0 {
		return nil, fmt.Errorf("estimated hours must be positive, got %v", estimatedHours)
	}
	if deadline != "" {
		if _, err := time.Parse(schedule.DateLayout, deadline); err != nil {
			return nil, fmt.Errorf("deadline must be an ISO date: %w", err)
		}
	}

	tasks, err := s.repo.LoadTasks()
	if err != nil {
		return nil, err
	}

	task := schedule.Task{
		ID:             uuid.New().String(),
		Title:          title,
		EstimatedHours: estimatedHours,
		Status:         schedule.TaskPending,
		Category:       category,
		Important:      important,
		Deadline:       deadline,
		CreatedAt:      time.Now(),
	}
	tasks = append(tasks, task)
	if err := s.repo.SaveTasks(tasks); err != nil {
		return nil, err
	}
	if s.audit != nil {
		if err := s.audit.Log("task.add", actor, map[string]interface{}{"task_id": task.ID, "title": task.Title}); err != nil {
			return nil, err
		}
	}
	return &task, nil
}

func (s *TaskService) ListTasks() ([]schedule.Task, error) {
	return s.repo.LoadTasks()
}

// CompleteTask marks a backlog item done. A completed task contributes
// nothing to unscheduled hours and its missed sessions are no longer
// collected for redistribution.
func (s *TaskService) CompleteTask(taskID string, actor string) error {
	tasks, err := s.repo.LoadTasks()
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == taskID {
			tasks[i].Status = schedule.TaskCompleted
			if err := s.repo.SaveTasks(tasks); err != nil {
				return err
			}
			if s.audit != nil {
				if err := s.audit.Log("task.complete", actor, map[string]interface{}{"task_id": taskID}); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return fmt.Errorf("task not found: %s", taskID)
}
