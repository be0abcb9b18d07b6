package anim

import (
	"math"

	"github.com/plus3/puppet/ecs"
)

// Player is the playback target: the one component in the world that can
// play a clip. Play restarts playback; chaining Repeat makes it loop.
//
//	player.Play(handle).Repeat()
type Player struct {
	Current  Handle
	Looping  bool
	Elapsed  float64
	Finished bool

	// Plays counts Play calls over the lifetime of the component.
	Plays int
}

func (p *Player) Play(h Handle) *Player {
	p.Current = h
	p.Looping = false
	p.Elapsed = 0
	p.Finished = false
	p.Plays++
	return p
}

func (p *Player) Repeat() *Player {
	p.Looping = true
	return p
}

// Frame returns the frame index of the current clip at the elapsed time.
func (p *Player) Frame(lib *Library) int {
	clip, ok := lib.Clip(p.Current)
	if !ok {
		return 0
	}
	return min(int(p.Elapsed*clip.FPS), clip.Frames-1)
}

// advance moves playback forward by dt seconds.
func (p *Player) advance(clip Clip, dt float64) {
	if p.Finished {
		return
	}
	duration := clip.Duration()
	p.Elapsed += dt
	if p.Elapsed < duration {
		return
	}
	if p.Looping && duration > 0 {
		p.Elapsed = math.Mod(p.Elapsed, duration)
		return
	}
	p.Elapsed = duration
	p.Finished = true
}

// PlaybackSystem advances every Player by the tick's delta time.
type PlaybackSystem struct {
	Players ecs.Query[struct{ *Player }]
	Library *Library
}

func (s *PlaybackSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Players.Values() {
		clip, ok := s.Library.Clip(item.Player.Current)
		if !ok {
			continue
		}
		item.Player.advance(clip, frame.DeltaTime)
	}
}

// SceneRoot tags the entity that the loaded character scene is attached to.
type SceneRoot struct {
	Name string
}

// SceneSystem stands in for scene instantiation: on its first tick it queues
// the spawn of the scene root carrying the Player. Commands are applied at
// the end of the tick, so the playback target becomes visible one tick
// after startup.
type SceneSystem struct {
	Scene string

	spawned bool
}

func (s *SceneSystem) Execute(frame *ecs.UpdateFrame) {
	if s.spawned {
		return
	}
	s.spawned = true
	frame.Commands.Spawn(SceneRoot{Name: s.Scene}, Player{})
}

// Register adds the anim components to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[SceneRoot](registry)
}
