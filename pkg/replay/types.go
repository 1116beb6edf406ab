package replay

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ssargent/osr/pkg/frames"
)

// GameMode is the ruleset a replay was played on.
type GameMode uint8

const (
	ModeStandard GameMode = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

var modeNames = [...]string{"standard", "taiko", "catch", "mania"}

// Valid reports whether m is one of the four known modes
func (m GameMode) Valid() bool {
	return int(m) < len(modeNames)
}

func (m GameMode) String() string {
	if m.Valid() {
		return modeNames[m]
	}
	return "GameMode(" + strconv.Itoa(int(m)) + ")"
}

// MarshalText renders the mode name, so JSON output reads "taiko" rather than 1
func (m GameMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("unknown game mode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText accepts anything ParseGameMode does
func (m *GameMode) UnmarshalText(text []byte) error {
	v, err := ParseGameMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseGameMode accepts a mode name, a common alias, or its numeric value.
func ParseGameMode(s string) (GameMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "standard", "std", "osu":
		return ModeStandard, nil
	case "1", "taiko":
		return ModeTaiko, nil
	case "2", "catch", "ctb", "fruits":
		return ModeCatch, nil
	case "3", "mania":
		return ModeMania, nil
	default:
		return 0, fmt.Errorf("unknown game mode %q", s)
	}
}

// Mods is the bitmask of gameplay modifiers. No combination rules are
// enforced.
type Mods uint32

const (
	ModNoFail Mods = 1 << iota
	ModEasy
	ModTouchDevice
	ModHidden
	ModHardRock
	ModSuddenDeath
	ModDoubleTime
	ModRelax
	ModHalfTime
	ModNightcore
	ModFlashlight
	ModAutoplay
	ModSpunOut
	ModAutopilot
	ModPerfect
	ModKey4
	ModKey5
	ModKey6
	ModKey7
	ModKey8
	ModFadeIn
	ModRandom
	ModCinema
	ModTarget
	ModKey9
	ModKeyCoop
	ModKey1
	ModKey3
	ModKey2
	ModScoreV2
	ModMirror

	ModNone Mods = 0
)

var modAcronyms = [...]string{
	"NF", "EZ", "TD", "HD", "HR", "SD", "DT", "RX", "HT", "NC", "FL", "AT",
	"SO", "AP", "PF", "4K", "5K", "6K", "7K", "8K", "FI", "RD", "CN", "TP",
	"9K", "CO", "1K", "3K", "2K", "V2", "MR",
}

// Has reports whether every bit of other is set in m
func (m Mods) Has(other Mods) bool {
	return m&other == other
}

// String lists the set mods by acronym, e.g. "HD,HR". Unnamed bits are
// rendered as their bit index.
func (m Mods) String() string {
	if m == ModNone {
		return "NM"
	}
	var parts []string
	for bit := 0; bit < 32; bit++ {
		if m&(1<<bit) == 0 {
			continue
		}
		if bit < len(modAcronyms) {
			parts = append(parts, modAcronyms[bit])
		} else {
			parts = append(parts, "bit"+strconv.Itoa(bit))
		}
	}
	return strings.Join(parts, ",")
}

// Keys is the standard mode key bitset.
type Keys uint32

const (
	KeyM1 Keys = 1 << iota
	KeyM2
	KeyK1
	KeyK2
	KeySmoke
)

func (k Keys) Has(other Keys) bool { return k&other == other }

// TaikoKeys is the taiko drum-hit bitset.
type TaikoKeys uint32

const (
	TaikoLeftDon TaikoKeys = 1 << iota
	TaikoLeftKat
	TaikoRightDon
	TaikoRightKat
)

func (k TaikoKeys) Has(other TaikoKeys) bool { return k&other == other }

// ManiaKeys holds one bit per lane, lane 0 in the lowest bit.
type ManiaKeys uint32

// MaxManiaLanes is the widest key layout the game supports.
const MaxManiaLanes = 18

// Lane reports whether lane i (zero based) is held
func (k ManiaKeys) Lane(i int) bool {
	if i < 0 || i >= 32 {
		return false
	}
	return k&(1<<i) != 0
}

// Lanes returns the held lanes in ascending order
func (k ManiaKeys) Lanes() []int {
	var lanes []int
	for i := 0; i < 32; i++ {
		if k.Lane(i) {
			lanes = append(lanes, i)
		}
	}
	return lanes
}

// ReplayIDWideVersion is the first client version that stores the replay id
// as 64 bits. Older versions use 32 bits.
const ReplayIDWideVersion int32 = 20140721

// UsesWideReplayID reports whether version stores a 64-bit replay id
func UsesWideReplayID(version int32) bool {
	return version >= ReplayIDWideVersion
}

// ReplayID is the online score id, either 32 or 64 bits wide. The width is
// fixed when the value is created.
type ReplayID struct {
	value uint64
	wide  bool
}

// NarrowReplayID creates a 32-bit replay id
func NarrowReplayID(v uint32) ReplayID {
	return ReplayID{value: uint64(v)}
}

// WideReplayID creates a 64-bit replay id
func WideReplayID(v uint64) ReplayID {
	return ReplayID{value: v, wide: true}
}

// ReplayIDForVersion creates an id with the width version implies. Values that
// do not fit a narrow id are truncated to 32 bits.
func ReplayIDForVersion(version int32, v uint64) ReplayID {
	if UsesWideReplayID(version) {
		return WideReplayID(v)
	}
	return NarrowReplayID(uint32(v))
}

func (id ReplayID) Value() uint64 { return id.value }
func (id ReplayID) Wide() bool    { return id.wide }

func (id ReplayID) String() string {
	return strconv.FormatUint(id.value, 10)
}

func (id ReplayID) MarshalJSON() ([]byte, error) {
	return []byte(id.String()), nil
}

// LifeBarFrame is one sample of the health bar.
type LifeBarFrame struct {
	Time       int64   `json:"time"`       // milliseconds
	Percentage float32 `json:"percentage"` // 0.0 to 1.0
}

// Tick conversion. Timestamps count 100ns ticks since 0001-01-01 UTC.
const (
	TicksPerSecond int64 = 10_000_000
	UnixEpochTicks int64 = 621_355_968_000_000_000
)

// TicksToTime converts a replay timestamp to a UTC time
func TicksToTime(ticks int64) time.Time {
	d := ticks - UnixEpochTicks
	sec := d / TicksPerSecond
	rem := d % TicksPerSecond
	if rem < 0 {
		sec--
		rem += TicksPerSecond
	}
	return time.Unix(sec, rem*100).UTC()
}

// TimeToTicks converts t to a replay timestamp, dropping sub-tick precision
func TimeToTicks(t time.Time) int64 {
	return UnixEpochTicks + t.Unix()*TicksPerSecond + int64(t.Nanosecond())/100
}

// Replay is a decoded .osr file.
type Replay struct {
	Mode        GameMode `json:"mode"`
	Version     int32    `json:"version"`
	BeatmapHash string   `json:"beatmap_hash"`
	PlayerName  string   `json:"player_name"`
	ReplayHash  string   `json:"replay_hash"`

	Count300  uint16 `json:"count_300"`
	Count100  uint16 `json:"count_100"`
	Count50   uint16 `json:"count_50"`
	CountGeki uint16 `json:"count_geki"`
	CountKatu uint16 `json:"count_katu"`
	CountMiss uint16 `json:"count_miss"`

	Score    int32  `json:"score"`
	MaxCombo uint16 `json:"max_combo"`
	Perfect  bool   `json:"perfect"`
	Mods     Mods   `json:"mods"`

	LifeBar   []LifeBarFrame `json:"life_bar,omitempty"`
	Timestamp int64          `json:"timestamp"` // ticks, see TicksToTime
	Events    []ReplayEvent  `json:"events,omitempty"`
	ReplayID  ReplayID       `json:"replay_id"`
	Seed      *int32         `json:"seed,omitempty"`

	// Padding holds leading frames the padding policy discarded on decode.
	// They are written back, unchanged, on encode.
	Padding []frames.Frame `json:"padding,omitempty"`
}

// PlayedAt returns the timestamp as a time.Time
func (r *Replay) PlayedAt() time.Time {
	return TicksToTime(r.Timestamp)
}

// SetPlayedAt sets the timestamp from t
func (r *Replay) SetPlayedAt(t time.Time) {
	r.Timestamp = TimeToTicks(t)
}
