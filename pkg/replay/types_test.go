package replay

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameMode(t *testing.T) {
	assert.Equal(t, "catch", ModeCatch.String())
	assert.Equal(t, "GameMode(7)", GameMode(7).String())
	assert.False(t, GameMode(4).Valid())

	for in, want := range map[string]GameMode{
		"osu": ModeStandard, "0": ModeStandard, "Taiko": ModeTaiko,
		"ctb": ModeCatch, "fruits": ModeCatch, "3": ModeMania, " mania ": ModeMania,
	} {
		got, err := ParseGameMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseGameMode("drums")
	assert.Error(t, err)
}

func TestGameMode_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Mode GameMode `json:"mode"`
	}{ModeMania})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"mania"}`, string(b))

	var v struct {
		Mode GameMode `json:"mode"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"mode":"taiko"}`), &v))
	assert.Equal(t, ModeTaiko, v.Mode)
}

func TestMods(t *testing.T) {
	assert.Equal(t, "NM", ModNone.String())
	assert.Equal(t, "HD,DT,FL", (ModHidden | ModDoubleTime | ModFlashlight).String())
	assert.Equal(t, "MR,bit31", (ModMirror | 1<<31).String())

	m := ModHidden | ModHardRock
	assert.True(t, m.Has(ModHidden))
	assert.True(t, m.Has(ModHidden|ModHardRock))
	assert.False(t, m.Has(ModHidden|ModEasy))
	assert.Equal(t, Mods(1<<30), ModMirror)
	assert.Equal(t, Mods(1<<14), ModPerfect)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, Keys(16), KeySmoke)
	assert.True(t, (KeyM1 | KeyK1).Has(KeyK1))
	assert.Equal(t, TaikoKeys(8), TaikoRightKat)
	assert.True(t, (TaikoLeftDon | TaikoRightDon).Has(TaikoRightDon))

	k := ManiaKeys(0b100101)
	assert.True(t, k.Lane(0))
	assert.False(t, k.Lane(1))
	assert.True(t, k.Lane(5))
	assert.False(t, k.Lane(-1))
	assert.False(t, k.Lane(40))
	assert.Equal(t, []int{0, 2, 5}, k.Lanes())
}

func TestReplayID(t *testing.T) {
	assert.False(t, UsesWideReplayID(20140720))
	assert.True(t, UsesWideReplayID(20140721))

	assert.Equal(t, NarrowReplayID(3), ReplayIDForVersion(20140101, 1<<32|3))
	assert.Equal(t, WideReplayID(1<<32|3), ReplayIDForVersion(20150101, 1<<32|3))

	b, err := json.Marshal(WideReplayID(4_000_000_000_123))
	require.NoError(t, err)
	assert.Equal(t, "4000000000123", string(b))
}

func TestTicks(t *testing.T) {
	assert.Equal(t, time.Unix(0, 0).UTC(), TicksToTime(UnixEpochTicks))
	assert.Equal(t, time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), TicksToTime(0))

	at := time.Date(2023, 4, 5, 6, 7, 8, 123456700, time.UTC)
	assert.Equal(t, at, TicksToTime(TimeToTicks(at)))

	before := time.Date(1960, 1, 1, 0, 0, 0, 500, time.UTC)
	assert.Equal(t, before, TicksToTime(TimeToTicks(before)))

	var r Replay
	r.SetPlayedAt(at)
	assert.Equal(t, at, r.PlayedAt())
}
