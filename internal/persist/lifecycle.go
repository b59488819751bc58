package persist

import (
	"fmt"
	"sync"
)

// State is the gateway's initialization state.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateInitializing  State = "initializing"
	StateReady         State = "ready"
	StateInitFailed    State = "init_failed"
)

// lifecycle tracks gateway state and the resolved settings path.
type lifecycle struct {
	mu    sync.RWMutex
	state State
	path  string
}

func newLifecycle() *lifecycle {
	return &lifecycle{state: StateUninitialized}
}

// transition validates and applies a state change.
func (l *lifecycle) transition(to State) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !isValidTransition(l.state, to) {
		return fmt.Errorf("invalid gateway transition: %s -> %s", l.state, to)
	}
	l.state = to
	return nil
}

// ready moves an initializing gateway to ready with its settings path.
func (l *lifecycle) ready(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !isValidTransition(l.state, StateReady) {
		return fmt.Errorf("invalid gateway transition: %s -> %s", l.state, StateReady)
	}
	l.state = StateReady
	l.path = path
	return nil
}

// snapshot returns the current state and path.
func (l *lifecycle) snapshot() (State, string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state, l.path
}

// isValidTransition enforces the allowed state machine edges. A failed
// initialization may be retried by the caller.
func isValidTransition(from, to State) bool {
	switch from {
	case StateUninitialized, StateInitFailed:
		return to == StateInitializing
	case StateInitializing:
		return to == StateReady || to == StateInitFailed
	default:
		return false
	}
}
