package wiring

import (
	"sync"

	"github.com/felixgeelhaar/studyflow/internal/application"
	"github.com/felixgeelhaar/studyflow/internal/infrastructure/storage"
)

// Workspace bundles core infrastructure dependencies.
type Workspace struct {
	Repo  *storage.FilesystemRepository
	Audit *application.AuditService

	// mu serializes all mutations against the same plan-set snapshot.
	mu sync.Mutex
}

func NewWorkspace(root string) *Workspace {
	repo := storage.NewFilesystemRepository(root)
	return &Workspace{
		Repo:  repo,
		Audit: application.NewAuditService(repo),
	}
}

// MutationLock returns the mutex shared by every mutating service.
func (w *Workspace) MutationLock() *sync.Mutex {
	return &w.mu
}
