package control

import (
	"github.com/plus3/puppet/ecs"
	"go.uber.org/zap"
)

// DefaultSpeed is the ground speed in world units per second.
const DefaultSpeed = 0.5

// Resolve applies one tick of input to p and reports whether the player
// moved. Precedence is fixed:
//
//  1. right button held: Special
//  2. any directional key held: Moving, position nudged by speed*dt per key
//  3. otherwise Idle, unless the state is Special, which sticks until the
//     next movement
//
// Each key moves its own axis, so two orthogonal keys move sqrt(2) times
// faster than one, and opposing keys cancel.
func Resolve(in *InputSnapshot, p *PlayerState, speed float32, dt float64) bool {
	if in.ButtonHeld(ButtonRight) {
		p.State = Special
	}

	step := speed * float32(dt)
	moved := false

	if in.KeyHeld(KeyUp) {
		p.I -= step
		moved = true
	}
	if in.KeyHeld(KeyDown) {
		p.I += step
		moved = true
	}
	if in.KeyHeld(KeyRight) {
		p.J -= step
		moved = true
	}
	if in.KeyHeld(KeyLeft) {
		p.J += step
		moved = true
	}

	switch {
	case moved:
		p.State = Moving
	case p.State != Special:
		p.State = Idle
	}
	return moved
}

// StateResolverSystem runs Resolve against the tick's input and, when the
// player moved, writes the new translation to the player's Transform.
type StateResolverSystem struct {
	Input  ecs.Singleton[InputSnapshot]
	Player ecs.Singleton[PlayerState]

	Speed  float32
	Logger *zap.Logger

	transforms *ecs.View[struct{ *Transform }]
}

func (s *StateResolverSystem) Execute(frame *ecs.UpdateFrame) {
	p := s.Player.MustGet()
	before := p.State

	if !Resolve(s.Input.MustGet(), p, s.Speed, frame.DeltaTime) {
		s.logTransition(frame.Tick, before, p.State)
		return
	}

	if s.transforms == nil {
		s.transforms = ecs.NewView[struct{ *Transform }](frame.Storage)
	}
	target := s.transforms.GetRef(p.MustEntity())
	if target == nil {
		panic("control: player entity has no Transform")
	}
	target.Transform.Translation = p.Translation()

	s.logTransition(frame.Tick, before, p.State)
}

func (s *StateResolverSystem) logTransition(tick uint64, from, to StateCode) {
	if from == to || s.Logger == nil {
		return
	}
	s.Logger.Debug("state changed",
		zap.Uint64("tick", tick),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
	)
}
