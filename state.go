package cadence

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// State is the learning stage of a card. The numeric values are the ones
// persisted by existing stores and must not change.
type State int

const (
	New        State = iota // Never reviewed.
	Learning                // In initial learning steps.
	Review                  // Entered long-term review cycle.
	Relearning              // Forgotten, relearning.
)

var stateNames = [...]string{New: "New", Learning: "Learning", Review: "Review", Relearning: "Relearning"}

var (
	_ fmt.Stringer             = State(0)
	_ json.Unmarshaler         = (*State)(nil)
	_ encoding.TextMarshaler   = State(0)
	_ encoding.TextUnmarshaler = (*State)(nil)
)

// ParseState parses a state name, in any case, or its number.
func ParseState(s string) (State, error) {
	v, ok := parseEnum[State](s, stateNames[:])
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidState, s)
	}
	return v, nil
}

// IsValid reports whether s is one of New, Learning, Review or Relearning.
func (s State) IsValid() bool {
	return s >= New && s <= Relearning
}

func (s State) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidState, int(s))
	}
	return []byte(stateNames[s]), nil
}

func (s *State) UnmarshalText(text []byte) error {
	v, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalJSON accepts a name or the numeric value 0-3.
func (s *State) UnmarshalJSON(data []byte) error {
	text, ok := enumText(data)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidState, data)
	}
	return s.UnmarshalText([]byte(text))
}
