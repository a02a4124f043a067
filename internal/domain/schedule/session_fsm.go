package schedule

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Session lifecycle events.
const (
	EventComplete = "complete"
	EventSkip     = "skip"
)

// SessionContext carries per-machine data into guards.
type SessionContext struct {
	Key   string
	Guard func(key string, event string) bool
}

// SessionLifecycle wraps the stored-status state machine for a session.
// Completed and skipped are terminal: no event leads out of them, which is
// what keeps terminal classifications sticky.
type SessionLifecycle struct {
	interpreter *statekit.Interpreter[SessionContext]
}

// NewSessionLifecycle builds the machine for a session currently in the
// given stored status. The guard is consulted before explicit transitions;
// it is where callers refuse, for example, completing a session that has
// already been classified missed.
func NewSessionLifecycle(initial SessionStatus, key string, guard func(string, string) bool) (*SessionLifecycle, error) {
	if guard == nil {
		guard = func(string, string) bool { return true }
	}
	start := initial
	if start == "" {
		start = SessionScheduled
	}

	builder := statekit.NewMachine[SessionContext]("study-session").
		WithInitial(statekit.StateID(start)).
		WithContext(SessionContext{Key: key, Guard: guard}).
		WithGuard("sessionGuard", func(ctx SessionContext, e statekit.Event) bool {
			return ctx.Guard(ctx.Key, string(e.Type))
		})

	builder.State(statekit.StateID(SessionScheduled)).
		On(EventComplete).Target(statekit.StateID(SessionCompleted)).Guard("sessionGuard").
		On(EventSkip).Target(statekit.StateID(SessionSkipped)).Guard("sessionGuard").
		Done()

	builder.State(statekit.StateID(SessionCompleted)).Done()
	builder.State(statekit.StateID(SessionSkipped)).Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build session machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &SessionLifecycle{interpreter: interpreter}, nil
}

// Transition attempts to move the session to a new stored status. The
// machine leaves the state unchanged when the event is invalid for the
// current state or a guard refuses it, which surfaces as an error here.
func (sm *SessionLifecycle) Transition(event string) error {
	before := sm.Current()
	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := sm.Current()

	if before != after {
		return nil
	}
	return fmt.Errorf("the action '%s' is not allowed while the session is '%s'", event, before)
}

// Current returns the machine's stored status.
func (sm *SessionLifecycle) Current() SessionStatus {
	return SessionStatus(sm.interpreter.State().Value)
}
