package domain

import "fmt"

// Lifecycle state of a stop-line rule instance.
//
// The lifecycle only ever moves forward: APPROACH → STOPPED → START.
// START is terminal; a rule that has released its constraint never
// re-arms for the same stop line.
type State int

const (
	StateApproach State = iota
	StateStopped
	StateStart
)

func (s State) String() string {
	switch s {
	case StateApproach:
		return "APPROACH"
	case StateStopped:
		return "STOPPED"
	case StateStart:
		return "START"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ParseState is the inverse of String, used when reading persisted
// lifecycle transitions back from storage.
func ParseState(s string) (State, error) {
	switch s {
	case "APPROACH":
		return StateApproach, nil
	case "STOPPED":
		return StateStopped, nil
	case "START":
		return StateStart, nil
	default:
		return StateApproach, fmt.Errorf("parse state: unknown state %q", s)
	}
}
