package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ssargent/osr/pkg/frames"
)

func TestInterpret(t *testing.T) {
	f := frames.Frame{TimeDelta: 16, X: 120.5, Y: 64, Keys: 0b1011}

	tests := []struct {
		mode GameMode
		want ReplayEvent
	}{
		{ModeStandard, StandardEvent{X: 120.5, Y: 64, TimeDelta: 16, Keys: KeyM1 | KeyM2 | KeyK2}},
		{ModeTaiko, TaikoEvent{TimeDelta: 16, Keys: TaikoLeftDon | TaikoLeftKat | TaikoRightKat}},
		{ModeCatch, CatchEvent{X: 120.5, TimeDelta: 16, Dashing: true}},
		{ModeMania, ManiaEvent{TimeDelta: 16, Keys: 0b1011}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got := Interpret(tt.mode, f)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.mode, got.Mode())
			assert.Equal(t, int64(16), got.Delta())
		})
	}
}

func TestInterpret_Total(t *testing.T) {
	inputs := []frames.Frame{
		{},
		{TimeDelta: -1, X: -512, Y: 9999, Keys: 0xffffffff},
		{TimeDelta: 1 << 40, X: 0.001, Y: -0.001, Keys: 1},
	}
	for m := 0; m < 256; m++ {
		for _, f := range inputs {
			assert.NotPanics(t, func() {
				e := Interpret(GameMode(m), f)
				assert.NotNil(t, e)
			})
		}
	}
}

func TestInterpret_UnknownModeIsStandard(t *testing.T) {
	e := Interpret(GameMode(9), frames.Frame{TimeDelta: 1, X: 2, Y: 3, Keys: 4})
	assert.Equal(t, StandardEvent{X: 2, Y: 3, TimeDelta: 1, Keys: KeyK1}, e)
}

func TestCatch_DashBitOnly(t *testing.T) {
	assert.False(t, Interpret(ModeCatch, frames.Frame{Keys: 2}).(CatchEvent).Dashing)
	assert.True(t, Interpret(ModeCatch, frames.Frame{Keys: 3}).(CatchEvent).Dashing)
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		in   ReplayEvent
		want frames.Frame
	}{
		{"standard", StandardEvent{X: 1, Y: 2, TimeDelta: 3, Keys: KeySmoke}, frames.Frame{TimeDelta: 3, X: 1, Y: 2, Keys: 16}},
		{"taiko", TaikoEvent{TimeDelta: 3, Keys: TaikoRightDon}, frames.Frame{TimeDelta: 3, Keys: 4}},
		{"catch dashing", CatchEvent{X: 7.5, TimeDelta: 3, Dashing: true}, frames.Frame{TimeDelta: 3, X: 7.5, Keys: 1}},
		{"catch", CatchEvent{X: 7.5, TimeDelta: 3}, frames.Frame{TimeDelta: 3, X: 7.5}},
		{"mania", ManiaEvent{TimeDelta: 3, Keys: 1 << 9}, frames.Frame{TimeDelta: 3, Keys: 512}},
		{"nil", nil, frames.Frame{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Flatten(tt.in))
		})
	}
}

func TestFlattenInterpret_Inverse(t *testing.T) {
	for _, mode := range []GameMode{ModeStandard, ModeTaiko, ModeCatch, ModeMania} {
		for _, e := range sampleEvents(mode) {
			assert.Equal(t, e, Interpret(mode, Flatten(e)))
		}
	}
}

func TestInterpretAll_Empty(t *testing.T) {
	assert.Nil(t, InterpretAll(ModeMania, nil))
	assert.Nil(t, FlattenAll(nil))
}
