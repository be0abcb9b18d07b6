package control_test

import (
	"testing"

	"github.com/plus3/puppet/anim"
	"github.com/plus3/puppet/control"
	"github.com/plus3/puppet/ecs"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const tick = 1.0 / 60.0

type world struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	systems   *control.Systems
	player    *control.PlayerState
	catalog   control.ClipCatalog
	input     *control.InputSnapshot
}

func newWorld(t *testing.T, logger *zap.Logger) *world {
	t.Helper()

	lib, err := anim.DefaultLibrary()
	require.NoError(t, err)
	catalog, err := control.LoadClipCatalog(lib, control.DefaultClipNames)
	require.NoError(t, err)

	registry := ecs.NewComponentRegistry()
	control.Register(registry)
	storage := ecs.NewStorage(registry)

	w := &world{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		catalog:   catalog,
		input:     &control.InputSnapshot{},
	}
	w.player = control.Setup(storage, "ba", catalog)
	w.systems = control.Install(w.scheduler, control.Options{
		Source: w.input,
		Logger: logger,
	})
	return w
}

// attach spawns a playback target directly, as the scene would.
func (w *world) attach() ecs.EntityId {
	return w.storage.Spawn(anim.SceneRoot{Name: "test"}, anim.Player{})
}

func (w *world) target(id ecs.EntityId) *anim.Player {
	return ecs.ReadComponent[anim.Player](w.storage, id)
}

func (w *world) hold(keys ...control.Key) *world {
	clear(w.input.Keys[:])
	for _, k := range keys {
		w.input.Keys[k] = true
	}
	return w
}

func (w *world) press(buttons ...control.Button) *world {
	clear(w.input.Buttons[:])
	for _, b := range buttons {
		w.input.Buttons[b] = true
	}
	return w
}

func (w *world) release() *world {
	return w.hold().press()
}

func (w *world) step() *world {
	w.scheduler.Once(tick)
	return w
}

func (w *world) transform() control.Vec3 {
	return ecs.ReadComponent[control.Transform](w.storage, w.player.Entity.Id).Translation
}
