package core

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gedmarc/xaholder/internal/sentinel"
)

// ErrInvalidTransition is returned when a state transition is not permitted
// from the current state, or when the requested state equals the current
// state. It indicates a programming error in the caller, not a runtime
// condition.
const ErrInvalidTransition = sentinel.Error("xaholder: invalid state transition")

// State enumerates the lifecycle states of a pooled holder.
type State int32

const (
	// StateInPool means the holder is owned by the pool and available for
	// acquisition.
	StateInPool State = iota
	// StateAccessible means the holder is checked out and callable.
	StateAccessible
	// StateNotAccessible means the holder is checked out but suspended,
	// typically because the ambient transaction is suspended.
	StateNotAccessible
	// StateClosed is terminal: no further transitions are permitted.
	StateClosed
)

// String returns the symbolic state name, used in log output and error messages.
func (s State) String() string {
	switch s {
	case StateInPool:
		return "IN_POOL"
	case StateAccessible:
		return "ACCESSIBLE"
	case StateNotAccessible:
		return "NOT_ACCESSIBLE"
	case StateClosed:
		return "CLOSED"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// StateListener receives notifications around a state transition. A single
// holder registers itself as the sole listener on its own machine; there is
// no need for a fan-out list.
type StateListener interface {
	// PreTransition runs before the state changes. Implementations use this
	// to flush dangling resources (e.g. uncached statements) and clear
	// connection warnings when new is IN_POOL or NOT_ACCESSIBLE. It runs
	// while the machine's transition is still serialized, so its effects are
	// guaranteed to happen-before the new state becomes visible.
	PreTransition(old, new State)
	// PostTransition runs after the state has changed, used to update
	// timestamps and, on NOT_ACCESSIBLE->ACCESSIBLE, to re-enlist in the
	// ambient transaction.
	PostTransition(old, new State)
}

// transitions enumerates every permitted (old, new) pair. A request not
// present here, including any old == new request, is rejected with
// ErrInvalidTransition. The holder's acquire path tolerates shared
// re-entry into ACCESSIBLE by simply not requesting a transition when
// usage_count > 1; the machine itself never special-cases same-state
// requests.
var transitions = map[State]map[State]bool{
	StateInPool:        {StateAccessible: true, StateClosed: true},
	StateAccessible:    {StateInPool: true, StateNotAccessible: true, StateClosed: true},
	StateNotAccessible: {StateAccessible: true},
	StateClosed:        {},
}

// Machine is the holder's finite state machine. Transition calls are
// serialized internally so callers never need external locking around state
// changes.
type Machine struct {
	mu       sync.Mutex
	state    atomic.Int32
	listener StateListener
}

// NewMachine constructs a state machine in the given initial state, notifying
// listener of every subsequent transition.
func NewMachine(initial State, listener StateListener) *Machine {
	m := &Machine{listener: listener}
	m.state.Store(int32(initial))
	return m
}

// State returns the current state. Safe to call without external
// synchronization; it may be observed concurrently with an in-flight
// Transition, in which case it returns either the old or new state.
func (m *Machine) State() State {
	return State(m.state.Load())
}

// Transition attempts to move the machine from its current state to new.
// Returns ErrInvalidTransition if new is not a permitted successor of the
// current state, including when new equals the current state.
func (m *Machine) Transition(new State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old := State(m.state.Load())
	if old == new || !transitions[old][new] {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, old, new)
	}

	m.listener.PreTransition(old, new)
	m.state.Store(int32(new))
	m.listener.PostTransition(old, new)
	return nil
}
