package control_test

import (
	"testing"

	"github.com/plus3/puppet/control"
	"github.com/stretchr/testify/assert"
)

func TestStateCode(t *testing.T) {
	tests := []struct {
		state control.StateCode
		name  string
		index int
	}{
		{control.Idle, "idle", 1},
		{control.Special, "special", 2},
		{control.Moving, "moving", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.state.Valid())
			assert.Equal(t, tt.name, tt.state.String())
			assert.Equal(t, tt.index, tt.state.ClipIndex())
			assert.Less(t, tt.state.ClipIndex(), control.CatalogSize)
		})
	}

	var zero control.StateCode
	assert.False(t, zero.Valid())
	assert.Equal(t, "StateCode(0)", zero.String())
	assert.Panics(t, func() { zero.ClipIndex() })
	assert.Panics(t, func() { control.StateCode(9).ClipIndex() })
}

func TestParseInputNames(t *testing.T) {
	for _, k := range []control.Key{control.KeyUp, control.KeyDown, control.KeyLeft, control.KeyRight} {
		got, ok := control.ParseKey(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	for _, b := range []control.Button{control.ButtonLeft, control.ButtonRight} {
		got, ok := control.ParseButton(b.String())
		assert.True(t, ok)
		assert.Equal(t, b, got)
	}

	_, ok := control.ParseKey("space")
	assert.False(t, ok)
	_, ok = control.ParseButton("middle")
	assert.False(t, ok)
}
