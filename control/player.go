package control

import "github.com/plus3/puppet/ecs"

type Vec3 struct {
	X, Y, Z float32
}

// Transform is the renderable placement of an entity.
type Transform struct {
	Translation Vec3
}

// Character tags the entity the controller drives.
type Character struct {
	Name string
}

// PlayerState is the controller's record of the single player. It lives as
// a singleton for the whole process.
type PlayerState struct {
	// I and J are the accumulated ground-plane coordinates. The transform
	// translation is (I, 0, J).
	I, J float32

	State StateCode
	// Previous is State as of the last clip switch; it only serves edge
	// detection in AnimationSelectorSystem.
	Previous StateCode

	// Entity is assigned once by Setup and never replaced.
	Entity *ecs.EntityRef
}

func NewPlayerState(entity *ecs.EntityRef) PlayerState {
	return PlayerState{
		State:    Idle,
		Previous: Idle,
		Entity:   entity,
	}
}

// MustEntity returns the player entity. A nil or stale ref means systems
// ran before Setup, or something deleted the player; both are bugs, so it
// panics rather than letting the position drift from the transform.
func (p *PlayerState) MustEntity() *ecs.EntityRef {
	if !p.Entity.Valid() {
		panic("control: player entity used before setup")
	}
	return p.Entity
}

// Translation is where the player's transform should be.
func (p *PlayerState) Translation() Vec3 {
	return Vec3{X: p.I, Y: 0, Z: p.J}
}
