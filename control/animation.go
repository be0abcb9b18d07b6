package control

import (
	"github.com/plus3/puppet/anim"
	"github.com/plus3/puppet/ecs"
	"go.uber.org/zap"
)

type playbackTarget = struct{ *anim.Player }

// AnimationSelectorSystem switches the looping clip when the player state
// changed since the last switch. Exactly one playback target must exist;
// with zero or several the switch is skipped and retried on the next tick,
// which covers the ticks before the character scene is attached.
type AnimationSelectorSystem struct {
	Player  ecs.Singleton[PlayerState]
	Catalog ecs.Singleton[ClipCatalog]
	Targets ecs.Query[playbackTarget]

	Logger *zap.Logger
}

func (s *AnimationSelectorSystem) Execute(frame *ecs.UpdateFrame) {
	p := s.Player.MustGet()
	if p.State == p.Previous {
		return
	}

	_, target, err := s.Targets.Single()
	if err != nil {
		return
	}

	catalog := s.Catalog.MustGet()
	target.Player.Play(catalog.For(p.State)).Repeat()
	p.Previous = p.State

	if s.Logger != nil {
		s.Logger.Debug("clip switched",
			zap.Uint64("tick", frame.Tick),
			zap.Stringer("state", p.State),
			zap.String("clip", catalog.Name(p.State)),
		)
	}
}

// StartupClipSystem starts the clip for the initial state on the first tick
// a single playback target exists. It fires once per process, even if the
// target later goes away and comes back.
type StartupClipSystem struct {
	Player  ecs.Singleton[PlayerState]
	Catalog ecs.Singleton[ClipCatalog]
	Targets ecs.Query[playbackTarget]

	Logger *zap.Logger

	done bool
}

func (s *StartupClipSystem) Execute(frame *ecs.UpdateFrame) {
	if s.done {
		return
	}

	_, target, err := s.Targets.Single()
	if err != nil {
		return
	}

	p := s.Player.MustGet()
	catalog := s.Catalog.MustGet()
	target.Player.Play(catalog.For(p.State)).Repeat()
	s.done = true

	if s.Logger != nil {
		s.Logger.Info("playback target ready",
			zap.Uint64("tick", frame.Tick),
			zap.String("clip", catalog.Name(p.State)),
		)
	}
}

// Fired reports whether the startup clip has been played.
func (s *StartupClipSystem) Fired() bool {
	return s.done
}
