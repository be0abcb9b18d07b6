// Package control is the per-tick character controller: it turns held keys
// and mouse buttons into a StateCode and a position, and keeps the playing
// animation clip in step with the state.
package control

import "fmt"

// StateCode is the behaviour the character is in for the current tick.
// Values double as indices into the ClipCatalog.
type StateCode uint8

const (
	Idle StateCode = iota + 1
	Special
	Moving
)

func (s StateCode) Valid() bool {
	return s >= Idle && s <= Moving
}

func (s StateCode) String() string {
	switch s {
	case Idle:
		return "idle"
	case Special:
		return "special"
	case Moving:
		return "moving"
	default:
		return fmt.Sprintf("StateCode(%d)", uint8(s))
	}
}

// ClipIndex is the catalog slot of the clip shown in state s.
func (s StateCode) ClipIndex() int {
	if !s.Valid() {
		panic("control: no clip for invalid " + s.String())
	}
	return int(s)
}
