// Package frames parses and writes the ASCII event stream stored, compressed,
// inside a replay:
//
//	<time_delta>|<x>|<y>|<keys>,<time_delta>|<x>|<y>|<keys>,...,
//
// The stream may end with a seed frame (time delta -12345) carrying the
// pseudo-random seed of the play, and may start with synthetic padding frames
// that carry no input. Seed extraction is fixed by the format; padding
// detection is a policy chosen by the caller because a real first frame can
// legitimately look like padding.
package frames

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ssargent/osr/pkg/codec"
)

// SeedMarker is the time delta of the trailing seed frame.
const SeedMarker int64 = -12345

// Separators
const (
	FrameSeparator = ","
	FieldSeparator = "|"
)

// Frame is one generic event quadruple as stored in the stream.
type Frame struct {
	TimeDelta int64   `json:"time_delta"`
	X         float32 `json:"x"`
	Y         float32 `json:"y"`
	Keys      uint32  `json:"keys"`
}

// IsZero reports whether every field of f is zero
func (f Frame) IsZero() bool {
	return f == Frame{}
}

// SeedField selects which field of the seed frame holds the seed value.
type SeedField int

const (
	// SeedInX writes -12345|seed|0|0
	SeedInX SeedField = iota
	// SeedInKeys writes -12345|0|0|seed, the convention of the game client
	SeedInKeys
)

func (s SeedField) String() string {
	switch s {
	case SeedInX:
		return "x"
	case SeedInKeys:
		return "keys"
	default:
		return fmt.Sprintf("SeedField(%d)", int(s))
	}
}

// Options controls decoding and encoding. Options values are immutable and
// may be shared between goroutines.
type Options struct {
	// Padding decides how many leading frames are synthetic. Nil keeps all
	// frames.
	Padding PaddingPolicy
	// SeedField is where the seed is written, and the field read first when
	// decoding.
	SeedField SeedField
}

// DefaultOptions returns the options used by the replay codec by default
func DefaultOptions() Options {
	return Options{
		Padding:   DefaultPadding,
		SeedField: SeedInX,
	}
}

// Stream is a decoded event stream.
type Stream struct {
	Frames  []Frame
	Padding []Frame // leading frames discarded by the padding policy
	Seed    *int32  // nil when the stream had no seed frame
}

// Decode parses an event stream. Empty input yields an empty stream.
func Decode(data []byte, opts Options) (Stream, error) {
	if !utf8.Valid(data) {
		return Stream{}, fmt.Errorf("%w: event stream is not valid UTF-8", codec.ErrEncoding)
	}

	text := strings.TrimRight(strings.TrimSpace(string(data)), FrameSeparator)
	if text == "" {
		return Stream{}, nil
	}

	raw := strings.Split(text, FrameSeparator)

	frames := make([]Frame, 0, len(raw))
	var tokens [][]string
	for i, r := range raw {
		fields := strings.Split(r, FieldSeparator)
		f, err := parseFrame(i, r, fields)
		if err != nil {
			return Stream{}, err
		}
		frames = append(frames, f)
		tokens = append(tokens, fields)
	}

	var s Stream
	if last := len(frames) - 1; last >= 0 && frames[last].TimeDelta == SeedMarker {
		seed, err := parseSeed(last, tokens[last], opts.SeedField)
		if err != nil {
			return Stream{}, err
		}
		s.Seed = &seed
		frames = frames[:last]
	}

	skip := 0
	if opts.Padding != nil {
		skip = opts.Padding(frames)
		if skip < 0 {
			skip = 0
		}
		if skip > len(frames) {
			skip = len(frames)
		}
	}
	if skip > 0 {
		s.Padding = frames[:skip:skip]
	}
	s.Frames = frames[skip:]

	return s, nil
}

func parseFrame(index int, raw string, fields []string) (Frame, error) {
	if len(fields) != 4 {
		return Frame{}, &codec.FrameError{
			Kind:  codec.ErrMalformedFrame,
			Index: index,
			Token: raw,
			Err:   fmt.Errorf("expected 4 fields, got %d", len(fields)),
		}
	}

	bad := func(tok string, err error) error {
		return &codec.FrameError{Kind: codec.ErrMalformedFrame, Index: index, Token: tok, Err: err}
	}

	timeDelta, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Frame{}, bad(fields[0], err)
	}
	x, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return Frame{}, bad(fields[1], err)
	}
	y, err := strconv.ParseFloat(fields[2], 32)
	if err != nil {
		return Frame{}, bad(fields[2], err)
	}
	keys, err := parseKeys(fields[3])
	if err != nil {
		return Frame{}, bad(fields[3], err)
	}

	return Frame{
		TimeDelta: timeDelta,
		X:         float32(x),
		Y:         float32(y),
		Keys:      keys,
	}, nil
}

// parseKeys accepts the full uint32 range and negative 32-bit values, which
// some producers write for the seed frame.
func parseKeys(tok string) (uint32, error) {
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxUint32 {
		return 0, fmt.Errorf("keys %d out of 32-bit range", v)
	}
	return uint32(v), nil
}

// parseSeed reads the seed from the preferred field, falling back to the
// other one when the preferred field is zero.
func parseSeed(index int, fields []string, preferred SeedField) (int32, error) {
	first, second := fields[1], fields[3]
	if preferred == SeedInKeys {
		first, second = second, first
	}

	seed, err := parseSeedToken(first)
	if err != nil {
		return 0, &codec.FrameError{Kind: codec.ErrMalformedFrame, Index: index, Token: first, Err: err}
	}
	if seed != 0 {
		return seed, nil
	}

	seed, err = parseSeedToken(second)
	if err != nil {
		return 0, &codec.FrameError{Kind: codec.ErrMalformedFrame, Index: index, Token: second, Err: err}
	}
	return seed, nil
}

func parseSeedToken(tok string) (int32, error) {
	if v, err := strconv.ParseInt(tok, 10, 32); err == nil {
		return int32(v), nil
	}
	if v, err := strconv.ParseUint(tok, 10, 32); err == nil {
		return int32(uint32(v)), nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int32(f)) {
		return 0, fmt.Errorf("seed %q is not a 32-bit integer", tok)
	}
	return int32(f), nil
}

// Encode writes s in stream order: padding, frames, then the seed frame.
// Every frame, including the last, is followed by a comma.
func Encode(s Stream, opts Options) []byte {
	var b strings.Builder
	b.Grow((len(s.Padding) + len(s.Frames) + 1) * 24)

	for _, f := range s.Padding {
		writeFrame(&b, f)
	}
	for _, f := range s.Frames {
		writeFrame(&b, f)
	}
	if s.Seed != nil {
		writeSeed(&b, *s.Seed, opts.SeedField)
	}

	return []byte(b.String())
}

// writeSeed writes the seed as integer text so values beyond float32
// precision survive.
func writeSeed(b *strings.Builder, seed int32, field SeedField) {
	v := strconv.FormatInt(int64(seed), 10)
	b.WriteString(strconv.FormatInt(SeedMarker, 10))
	if field == SeedInKeys {
		b.WriteString("|0|0|")
		b.WriteString(v)
	} else {
		b.WriteString("|")
		b.WriteString(v)
		b.WriteString("|0|0")
	}
	b.WriteString(FrameSeparator)
}

func writeFrame(b *strings.Builder, f Frame) {
	b.WriteString(strconv.FormatInt(f.TimeDelta, 10))
	b.WriteString(FieldSeparator)
	b.WriteString(FormatFloat(f.X))
	b.WriteString(FieldSeparator)
	b.WriteString(FormatFloat(f.Y))
	b.WriteString(FieldSeparator)
	b.WriteString(strconv.FormatUint(uint64(f.Keys), 10))
	b.WriteString(FrameSeparator)
}

// FormatFloat renders v with the fewest digits that parse back to the same
// float32, without an exponent.
func FormatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
