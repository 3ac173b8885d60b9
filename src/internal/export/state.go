// FILE: hydrolog/src/internal/export/state.go
package export

import "fmt"

// State is the phase of one export call
type State int

const (
	StateCollecting State = iota
	StateMerging
	StateWriting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCollecting:
		return "collecting"
	case StateMerging:
		return "merging"
	case StateWriting:
		return "writing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition is possible
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

var transitions = map[State][]State{
	StateCollecting: {StateMerging, StateFailed},
	StateMerging:    {StateWriting, StateFailed},
	StateWriting:    {StateDone, StateFailed},
}

// CanTransition reports whether from → to is allowed
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// machine tracks the state of one export and its history
type machine struct {
	current State
	history []State
}

func newMachine() *machine {
	return &machine{current: StateCollecting, history: []State{StateCollecting}}
}

func (m *machine) to(next State) error {
	if !CanTransition(m.current, next) {
		return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, m.current, next)
	}
	m.current = next
	m.history = append(m.history, next)
	return nil
}
