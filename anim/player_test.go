package anim_test

import (
	"testing"

	"github.com/plus3/puppet/anim"
	"github.com/plus3/puppet/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLibrary(t *testing.T) *anim.Library {
	t.Helper()
	lib, err := anim.NewLibrary(anim.Manifest{Clips: []anim.Clip{
		{Name: "loop", Frames: 10, FPS: 10},
		{Name: "once", Frames: 5, FPS: 10},
	}})
	require.NoError(t, err)
	return lib
}

func TestPlayerPlayRepeat(t *testing.T) {
	lib := newTestLibrary(t)
	h, _ := lib.Load("loop")

	var p anim.Player
	p.Play(h).Repeat()

	assert.Equal(t, h, p.Current)
	assert.True(t, p.Looping)
	assert.Equal(t, 1, p.Plays)

	p.Elapsed = 0.35
	assert.Equal(t, 3, p.Frame(lib))

	p.Play(h)
	assert.False(t, p.Looping)
	assert.Zero(t, p.Elapsed)
	assert.Equal(t, 2, p.Plays)
}

func TestPlaybackSystem(t *testing.T) {
	lib := newTestLibrary(t)
	loop, _ := lib.Load("loop")
	once, _ := lib.Load("once")

	registry := ecs.NewComponentRegistry()
	anim.Register(registry)
	storage := ecs.NewStorage(registry)

	looping := storage.Spawn(anim.Player{})
	single := storage.Spawn(anim.Player{}, anim.SceneRoot{})
	idle := storage.Spawn(anim.Player{}, anim.SceneRoot{Name: "empty"})
	ecs.ReadComponent[anim.Player](storage, looping).Play(loop).Repeat()
	ecs.ReadComponent[anim.Player](storage, single).Play(once)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&anim.PlaybackSystem{Library: lib})

	for range 12 {
		scheduler.Once(0.1)
	}

	lp := ecs.ReadComponent[anim.Player](storage, looping)
	assert.InDelta(t, 0.2, lp.Elapsed, 1e-6)
	assert.False(t, lp.Finished)

	sp := ecs.ReadComponent[anim.Player](storage, single)
	assert.InDelta(t, 0.5, sp.Elapsed, 1e-9)
	assert.True(t, sp.Finished)
	assert.Equal(t, 4, sp.Frame(lib))

	assert.Zero(t, ecs.ReadComponent[anim.Player](storage, idle).Elapsed)
}

func TestSceneSystemAttachesNextTick(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	anim.Register(registry)
	storage := ecs.NewStorage(registry)

	targets := ecs.NewQuery[struct{ *anim.Player }](storage)
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&anim.SceneSystem{Scene: "ba.gltf#Scene0"})

	scheduler.Once(0)
	targets.Execute()
	assert.Equal(t, 1, targets.Len())

	scheduler.Once(0)
	targets.Execute()
	assert.Equal(t, 1, targets.Len(), "scene is only instantiated once")

	for root := range ecs.NewView[struct{ *anim.SceneRoot }](storage).Values() {
		assert.Equal(t, "ba.gltf#Scene0", root.SceneRoot.Name)
	}
}
