// Package watch re-runs the missed-session scan when workspace files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/felixgeelhaar/studyflow/internal/infrastructure/storage"
)

// DefaultSettle is the default quiet period after the last file event
// before a rescan fires.
const DefaultSettle = 500 * time.Millisecond

// RescanFunc re-runs the missed-session scan over the workspace.
type RescanFunc func()

// Watcher monitors the workspace data directory and triggers a rescan once
// changes to the tasks or plans file have settled. Editors typically write
// through temp files, producing a burst of events per save; only one rescan
// fires per burst.
type Watcher struct {
	dir     string
	watcher *fsnotify.Watcher
	settle  time.Duration
	rescan  RescanFunc

	mu      sync.Mutex
	pending *time.Timer
}

// NewWatcher creates a watcher for the workspace rooted at rootPath.
func NewWatcher(rootPath string, settle time.Duration, rescan RescanFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		dir:     filepath.Join(rootPath, storage.StudyflowDir),
		watcher: fsw,
		settle:  settle,
		rescan:  rescan,
	}

	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", w.dir, err)
	}
	return w, nil
}

// relevant reports whether the event touches a file we care about. Editors
// often write via temp files, so rename and create count alongside write.
func relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	return name == storage.TasksFile || name == storage.PlansFile
}

// scheduleRescan restarts the settle timer. The rescan fires once the
// window passes with no further events.
func (w *Watcher) scheduleRescan() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.settle, w.rescan)
}

func (w *Watcher) cancelRescan() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
}

// Run processes events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.cancelRescan()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if relevant(event) {
				w.scheduleRescan()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				return fmt.Errorf("watch error: %w", err)
			}
		}
	}
}

// Close releases the underlying file system watcher.
func (w *Watcher) Close() error {
	w.cancelRescan()
	return w.watcher.Close()
}
