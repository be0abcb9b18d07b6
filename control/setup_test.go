package control_test

import (
	"testing"

	"github.com/plus3/puppet/anim"
	"github.com/plus3/puppet/control"
	"github.com/plus3/puppet/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	w := newWorld(t, nil)

	assert.Equal(t, control.Idle, w.player.State)
	assert.Equal(t, control.Idle, w.player.Previous)
	require.True(t, w.player.Entity.Valid())

	character := ecs.ReadComponent[control.Character](w.storage, w.player.Entity.Id)
	require.NotNil(t, character)
	assert.Equal(t, "ba", character.Name)
	assert.Equal(t, control.Vec3{}, w.transform())

	catalog := ecs.NewSingleton[control.ClipCatalog](w.storage)
	assert.Equal(t, w.catalog, *catalog.MustGet())
	assert.Same(t, w.player, ecs.NewSingleton[control.PlayerState](w.storage).MustGet())
}

func TestInstallOrder(t *testing.T) {
	w := newWorld(t, nil)

	var names []string
	for _, s := range w.scheduler.GetStats().Systems {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"InputSystem",
		"StateResolverSystem",
		"CursorReportSystem",
		"StartupClipSystem",
		"AnimationSelectorSystem",
	}, names)
	assert.Equal(t, float32(control.DefaultSpeed), w.systems.Resolver.Speed)
	assert.NotNil(t, w.systems.Resolver.Logger)
}

func TestInstallWithLibraryAttachesScene(t *testing.T) {
	lib, err := anim.DefaultLibrary()
	require.NoError(t, err)
	catalog, err := control.LoadClipCatalog(lib, control.DefaultClipNames)
	require.NoError(t, err)

	registry := ecs.NewComponentRegistry()
	control.Register(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)
	player := control.Setup(storage, "ba", catalog)
	systems := control.Install(scheduler, control.Options{
		Source:  &control.InputSnapshot{},
		Library: lib,
		Scene:   "ba.gltf#Scene0",
	})
	assert.Equal(t, 7, scheduler.GetStats().SystemCount)

	scheduler.Once(tick)
	assert.False(t, systems.Startup.Fired(), "scene attaches at the end of the first tick")

	scheduler.Once(tick)
	require.True(t, systems.Startup.Fired())

	targets := ecs.NewQuery[struct {
		*anim.SceneRoot
		*anim.Player
	}](storage)
	targets.Execute()
	_, target, err := targets.Single()
	require.NoError(t, err)
	assert.Equal(t, "ba.gltf#Scene0", target.SceneRoot.Name)
	assert.Equal(t, catalog.For(player.State), target.Player.Current)
	assert.Greater(t, target.Player.Elapsed, 0.0)
}

func TestInputSystemCapturesSource(t *testing.T) {
	w := newWorld(t, nil)
	w.hold(control.KeyLeft).press(control.ButtonRight)
	w.input.CursorX, w.input.CursorY, w.input.CursorInside = 3, 4, true

	w.step()

	snap := ecs.NewSingleton[control.InputSnapshot](w.storage).MustGet()
	assert.True(t, snap.KeyHeld(control.KeyLeft))
	assert.False(t, snap.KeyHeld(control.KeyUp))
	assert.True(t, snap.ButtonHeld(control.ButtonRight))
	assert.True(t, snap.AnyDirection())
	x, y, ok := snap.CursorPosition()
	assert.Equal(t, []any{3.0, 4.0, true}, []any{x, y, ok})
}
