package control

import (
	"github.com/plus3/puppet/anim"
	"github.com/plus3/puppet/ecs"
	"go.uber.org/zap"
)

// Register adds the components used by the controller, including the
// animation components, to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Character](registry)
	anim.Register(registry)
}

// Setup spawns the player entity and adds the PlayerState, ClipCatalog and
// InputSnapshot singletons. It must run before the first tick.
func Setup(storage *ecs.Storage, name string, catalog ClipCatalog) *PlayerState {
	id := storage.Spawn(Character{Name: name}, Transform{})
	state := ecs.NewSingleton[PlayerState](storage, NewPlayerState(storage.CreateEntityRef(id)))
	ecs.NewSingleton[ClipCatalog](storage, catalog)
	ecs.NewSingleton[InputSnapshot](storage)
	return state.Get()
}

// Options configure Install.
type Options struct {
	Source InputSource
	// Speed defaults to DefaultSpeed when zero.
	Speed float32
	// Library, when set, adds the playback and scene systems.
	Library *anim.Library
	Scene   string
	Logger  *zap.Logger
}

// Systems are the controller systems registered by Install.
type Systems struct {
	Input    *InputSystem
	Resolver *StateResolverSystem
	Cursor   *CursorReportSystem
	Startup  *StartupClipSystem
	Selector *AnimationSelectorSystem
}

// Install registers the controller systems in tick order: input capture,
// state resolution, cursor report, startup clip, clip selection, then the
// presentation systems. The selector must follow the resolver so it sees the
// state written this tick.
func Install(scheduler *ecs.Scheduler, opts Options) *Systems {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	speed := opts.Speed
	if speed == 0 {
		speed = DefaultSpeed
	}

	sys := &Systems{
		Input:    &InputSystem{Source: opts.Source},
		Resolver: &StateResolverSystem{Speed: speed, Logger: logger},
		Cursor:   &CursorReportSystem{Logger: logger},
		Startup:  &StartupClipSystem{Logger: logger},
		Selector: &AnimationSelectorSystem{Logger: logger},
	}

	scheduler.Register(sys.Input)
	scheduler.Register(sys.Resolver)
	scheduler.Register(sys.Cursor)
	scheduler.Register(sys.Startup)
	scheduler.Register(sys.Selector)

	if opts.Library != nil {
		scheduler.Register(&anim.PlaybackSystem{Library: opts.Library})
		scheduler.Register(&anim.SceneSystem{Scene: opts.Scene})
	}
	return sys
}
