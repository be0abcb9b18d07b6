package control_test

import (
	"math"
	"testing"

	"github.com/plus3/puppet/control"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func snapshot(keys []control.Key, buttons ...control.Button) *control.InputSnapshot {
	in := &control.InputSnapshot{}
	for _, k := range keys {
		in.Keys[k] = true
	}
	for _, b := range buttons {
		in.Buttons[b] = true
	}
	return in
}

func TestResolveStatePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		start   control.StateCode
		keys    []control.Key
		buttons []control.Button
		want    control.StateCode
		moved   bool
	}{
		{"no input stays idle", control.Idle, nil, nil, control.Idle, false},
		{"moving without input goes idle", control.Moving, nil, nil, control.Idle, false},
		{"special sticks without input", control.Special, nil, nil, control.Special, false},
		{"right button enters special", control.Idle, nil, []control.Button{control.ButtonRight}, control.Special, false},
		{"left button does nothing", control.Moving, nil, []control.Button{control.ButtonLeft}, control.Idle, false},
		{"key moves", control.Idle, []control.Key{control.KeyUp}, nil, control.Moving, true},
		{"movement ends special", control.Special, []control.Key{control.KeyLeft}, nil, control.Moving, true},
		{"movement overrides right button", control.Idle, []control.Key{control.KeyDown}, []control.Button{control.ButtonRight}, control.Moving, true},
		{"opposing keys still count as movement", control.Idle, []control.Key{control.KeyLeft, control.KeyRight}, nil, control.Moving, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := control.NewPlayerState(nil)
			p.State = tt.start

			moved := control.Resolve(snapshot(tt.keys, tt.buttons...), &p, control.DefaultSpeed, tick)

			assert.Equal(t, tt.want, p.State)
			assert.Equal(t, tt.moved, moved)
		})
	}
}

func TestResolveSingleKeyStep(t *testing.T) {
	p := control.NewPlayerState(nil)

	control.Resolve(snapshot([]control.Key{control.KeyUp}), &p, control.DefaultSpeed, tick)

	assert.InDelta(t, -0.008333, p.I, 1e-6)
	assert.Zero(t, p.J)
	assert.Equal(t, control.Vec3{X: p.I, Y: 0, Z: 0}, p.Translation())
}

func TestResolveAxes(t *testing.T) {
	step := float32(control.DefaultSpeed * tick)

	tests := []struct {
		key  control.Key
		i, j float32
	}{
		{control.KeyUp, -step, 0},
		{control.KeyDown, step, 0},
		{control.KeyRight, 0, -step},
		{control.KeyLeft, 0, step},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			p := control.NewPlayerState(nil)
			control.Resolve(snapshot([]control.Key{tt.key}), &p, control.DefaultSpeed, tick)
			assert.InDelta(t, tt.i, p.I, 1e-7)
			assert.InDelta(t, tt.j, p.J, 1e-7)
		})
	}
}

func TestResolveDiagonalIsFaster(t *testing.T) {
	straight := control.NewPlayerState(nil)
	diagonal := control.NewPlayerState(nil)

	control.Resolve(snapshot([]control.Key{control.KeyUp}), &straight, control.DefaultSpeed, tick)
	control.Resolve(snapshot([]control.Key{control.KeyUp, control.KeyLeft}), &diagonal, control.DefaultSpeed, tick)

	one := math.Hypot(float64(straight.I), float64(straight.J))
	both := math.Hypot(float64(diagonal.I), float64(diagonal.J))
	assert.InDelta(t, math.Sqrt2, both/one, 1e-5)
}

func TestResolveOpposingKeysCancel(t *testing.T) {
	p := control.NewPlayerState(nil)
	all := []control.Key{control.KeyUp, control.KeyDown, control.KeyLeft, control.KeyRight}

	for range 10 {
		control.Resolve(snapshot(all), &p, control.DefaultSpeed, tick)
	}

	assert.Zero(t, p.I)
	assert.Zero(t, p.J)
	assert.Equal(t, control.Moving, p.State)
}

func TestResolveZeroDeltaTime(t *testing.T) {
	p := control.NewPlayerState(nil)

	moved := control.Resolve(snapshot([]control.Key{control.KeyUp}), &p, control.DefaultSpeed, 0)

	assert.True(t, moved)
	assert.Zero(t, p.I)
	assert.Equal(t, control.Moving, p.State)
}

func TestStateResolverWritesTransform(t *testing.T) {
	w := newWorld(t, nil)

	w.hold(control.KeyDown, control.KeyLeft)
	for range 3 {
		w.step()
	}

	step := float32(control.DefaultSpeed * tick)
	got := w.transform()
	assert.InDelta(t, 3*step, got.X, 1e-6)
	assert.Zero(t, got.Y)
	assert.InDelta(t, 3*step, got.Z, 1e-6)
	assert.Equal(t, w.player.Translation(), got)

	w.release().step()
	assert.Equal(t, got, w.transform(), "transform only changes on movement")
}

func TestStateResolverCustomSpeed(t *testing.T) {
	w := newWorld(t, nil)
	w.systems.Resolver.Speed = 2

	w.hold(control.KeyRight).step()

	assert.InDelta(t, -2*tick, w.player.J, 1e-6)
}

func TestStateResolverPanicsWithoutPlayerEntity(t *testing.T) {
	w := newWorld(t, nil)
	w.storage.Delete(w.player.Entity.Id)

	w.hold(control.KeyUp)
	assert.PanicsWithValue(t, "control: player entity used before setup", func() { w.step() })
}

func TestMustEntity(t *testing.T) {
	p := control.NewPlayerState(nil)
	assert.Panics(t, func() { p.MustEntity() })

	w := newWorld(t, nil)
	require.NotNil(t, w.player.MustEntity())
	assert.Same(t, w.player.Entity, w.player.MustEntity())
}

func TestStateResolverLogsTransitions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := newWorld(t, zap.New(core))

	w.step()
	w.hold(control.KeyUp).step()
	w.step()
	w.release().step()

	changes := logs.FilterMessage("state changed").AllUntimed()
	require.Len(t, changes, 2)
	assert.Equal(t, "idle", changes[0].ContextMap()["from"])
	assert.Equal(t, "moving", changes[0].ContextMap()["to"])
	assert.Equal(t, uint64(1), changes[0].ContextMap()["tick"])
	assert.Equal(t, "idle", changes[1].ContextMap()["to"])
}
