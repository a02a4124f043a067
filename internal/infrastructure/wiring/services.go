package wiring

import (
	"github.com/felixgeelhaar/studyflow/internal/application"
	"github.com/felixgeelhaar/studyflow/internal/domain/schedule"
)

// AppServices exposes the application layer services wired together with a
// workspace.
type AppServices struct {
	Workspace *Workspace
	Task      *application.TaskService
	Session   *application.SessionService
	Schedule  *application.ScheduleService
	Audit     *application.AuditService
}

// BuildAppServices constructs the service workbench for a repo root. All
// services share one mutation lock and one clock.
func BuildAppServices(root string, clock schedule.Clock) *AppServices {
	workspace := NewWorkspace(root)
	if clock == nil {
		clock = schedule.SystemClock{}
	}
	mu := workspace.MutationLock()

	return &AppServices{
		Workspace: workspace,
		Task:      application.NewTaskService(workspace.Repo, workspace.Audit),
		Session:   application.NewSessionService(workspace.Repo, workspace.Audit, clock, mu),
		Schedule:  application.NewScheduleService(workspace.Repo, workspace.Audit, clock, mu),
		Audit:     workspace.Audit,
	}
}
