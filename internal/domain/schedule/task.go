package schedule

import "time"

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	TaskCancelled TaskStatus = "cancelled"
)

// Task is a backlog item. It outlives any single plan; sessions reference it
// by ID only.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	EstimatedHours float64    `json:"estimated_hours"`
	Status         TaskStatus `json:"status"`
	Category       string     `json:"category,omitempty"`
	Important      bool       `json:"important,omitempty"`
	Deadline       string     `json:"deadline,omitempty"` // ISO date, consumed upstream
	CreatedAt      time.Time  `json:"created_at"`
}

// TaskIndex builds an ID lookup over a task list.
func TaskIndex(tasks []Task) map[string]Task {
	idx := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		idx[t.ID] = t
	}
	return idx
}
