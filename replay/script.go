// Package replay drives the controller headless from a YAML script of held
// inputs, at a fixed tick length, and reports what happened.
package replay

import (
	"errors"
	"fmt"
	"os"

	"github.com/plus3/puppet/control"
	"gopkg.in/yaml.v3"
)

var ErrScript = errors.New("replay: bad script")

// DefaultDT is used when a script does not set dt.
const DefaultDT = 1.0 / 60.0

// Script is a sequence of steps. Each step holds its inputs for Ticks ticks;
// anything not listed is released.
//
//	name: special then walk
//	steps:
//	  - ticks: 1
//	    buttons: [right]
//	  - ticks: 30
//	    keys: [left]
//	expect:
//	  state: moving
type Script struct {
	Name   string  `yaml:"name"`
	DT     float64 `yaml:"dt"`
	Steps  []Step  `yaml:"steps"`
	Expect *Expect `yaml:"expect"`
}

type Step struct {
	Ticks   int      `yaml:"ticks"`
	Keys    []string `yaml:"keys"`
	Buttons []string `yaml:"buttons"`

	// Cursor is nil while the pointer is outside the window.
	Cursor *Cursor `yaml:"cursor"`
}

type Cursor struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Expect is checked against the final state. Nil fields are not checked.
type Expect struct {
	State    string   `yaml:"state"`
	I        *float32 `yaml:"i"`
	J        *float32 `yaml:"j"`
	Switches *int     `yaml:"switches"`
}

func ParseScript(data []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("replay: parse: %w", err)
	}
	if s.DT == 0 {
		s.DT = DefaultDT
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

func (s *Script) validate() error {
	if s.DT < 0 {
		return fmt.Errorf("%w: negative dt %v", ErrScript, s.DT)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrScript)
	}
	for i, step := range s.Steps {
		if step.Ticks <= 0 {
			return fmt.Errorf("%w: step %d: ticks must be positive", ErrScript, i)
		}
		if _, err := step.snapshot(); err != nil {
			return fmt.Errorf("%w: step %d: %v", ErrScript, i, err)
		}
	}
	if s.Expect != nil && s.Expect.State != "" {
		if _, ok := parseState(s.Expect.State); !ok {
			return fmt.Errorf("%w: unknown expected state %q", ErrScript, s.Expect.State)
		}
	}
	return nil
}

// TotalTicks is the length of the script in ticks.
func (s *Script) TotalTicks() int {
	n := 0
	for _, step := range s.Steps {
		n += step.Ticks
	}
	return n
}

func (st Step) snapshot() (control.InputSnapshot, error) {
	var snap control.InputSnapshot
	for _, name := range st.Keys {
		k, ok := control.ParseKey(name)
		if !ok {
			return snap, fmt.Errorf("unknown key %q", name)
		}
		snap.Keys[k] = true
	}
	for _, name := range st.Buttons {
		b, ok := control.ParseButton(name)
		if !ok {
			return snap, fmt.Errorf("unknown button %q", name)
		}
		snap.Buttons[b] = true
	}
	if st.Cursor != nil {
		snap.CursorX, snap.CursorY, snap.CursorInside = st.Cursor.X, st.Cursor.Y, true
	}
	return snap, nil
}

func parseState(name string) (control.StateCode, bool) {
	for _, s := range []control.StateCode{control.Idle, control.Special, control.Moving} {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}
