package replay

import (
	"errors"
	"fmt"

	"github.com/ssargent/osr/pkg/codec"
	"github.com/ssargent/osr/pkg/frames"
)

// fieldReader wraps codec.Reader and keeps the first error, so the header can
// be read field by field and checked once.
type fieldReader struct {
	r   *codec.Reader
	err error
}

func (f *fieldReader) u8(name string) uint8 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.U8(name)
	f.err = err
	return v
}

func (f *fieldReader) u16(name string) uint16 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.U16(name)
	f.err = err
	return v
}

func (f *fieldReader) i32(name string) int32 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.I32(name)
	f.err = err
	return v
}

func (f *fieldReader) u32(name string) uint32 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.U32(name)
	f.err = err
	return v
}

func (f *fieldReader) i64(name string) int64 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.I64(name)
	f.err = err
	return v
}

func (f *fieldReader) u64(name string) uint64 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.U64(name)
	f.err = err
	return v
}

func (f *fieldReader) str(name string) string {
	if f.err != nil {
		return ""
	}
	v, err := f.r.String(name)
	f.err = err
	return v
}

func (f *fieldReader) bytes(name string, n int) []byte {
	if f.err != nil {
		return nil
	}
	v, err := f.r.Bytes(name, n)
	f.err = err
	return v
}

// Decode parses a complete .osr file. Any error aborts decoding and no
// partial replay is returned.
func (c *Codec) Decode(data []byte) (*Replay, error) {
	fr := &fieldReader{r: codec.NewReader(data)}
	rep := &Replay{}

	mode := fr.u8("mode")
	if fr.err == nil && !GameMode(mode).Valid() {
		fr.err = &codec.FieldError{
			Kind:   codec.ErrMalformedField,
			Field:  "mode",
			Offset: 0,
			Err:    fmt.Errorf("unknown game mode %d", mode),
		}
	}
	rep.Mode = GameMode(mode)
	rep.Version = fr.i32("version")
	rep.BeatmapHash = fr.str("beatmap_hash")
	rep.PlayerName = fr.str("player_name")
	rep.ReplayHash = fr.str("replay_hash")
	rep.Count300 = fr.u16("count_300")
	rep.Count100 = fr.u16("count_100")
	rep.Count50 = fr.u16("count_50")
	rep.CountGeki = fr.u16("count_geki")
	rep.CountKatu = fr.u16("count_katu")
	rep.CountMiss = fr.u16("count_miss")
	rep.Score = fr.i32("score")
	rep.MaxCombo = fr.u16("max_combo")
	rep.Perfect = fr.u8("perfect") != 0
	rep.Mods = Mods(fr.u32("mods"))

	lifeBarOffset := fr.r.Offset()
	lifeBar := fr.str("life_bar")
	rep.Timestamp = fr.i64("timestamp")

	lengthOffset := fr.r.Offset()
	length := fr.i32("replay_data_length")
	if fr.err == nil && length < 0 {
		fr.err = &codec.FieldError{
			Kind:   codec.ErrMalformedField,
			Field:  "replay_data_length",
			Offset: lengthOffset,
			Err:    fmt.Errorf("negative length %d", length),
		}
	}
	blob := fr.bytes("replay_data", int(length))

	if UsesWideReplayID(rep.Version) {
		rep.ReplayID = WideReplayID(fr.u64("replay_id"))
	} else {
		rep.ReplayID = NarrowReplayID(fr.u32("replay_id"))
	}
	if fr.err != nil {
		return nil, fmt.Errorf("decode replay: %w", fr.err)
	}

	if rest := fr.r.Remaining(); rest > 0 {
		c.log.Debug().Int("bytes", rest).Msg("ignoring trailing bytes after replay id")
	}

	lb, err := ParseLifeBar(lifeBar)
	if err != nil {
		return nil, fmt.Errorf("decode replay: life bar at offset %d: %w", lifeBarOffset, err)
	}
	rep.LifeBar = lb

	events, err := c.decodeEvents(blob, true, rep.Mode)
	if err != nil {
		return nil, fmt.Errorf("decode replay: %w", err)
	}
	rep.Events = events.Events
	rep.Seed = events.Seed
	rep.Padding = events.Padding
	return rep, nil
}

// decodeEvents turns a raw event blob into interpreted events. An empty blob
// has no events and no seed.
func (c *Codec) decodeEvents(blob []byte, compressed bool, mode GameMode) (*EventData, error) {
	if len(blob) == 0 {
		return &EventData{}, nil
	}

	text := blob
	if compressed {
		var err error
		text, err = c.compressor.Decompress(blob)
		if err != nil {
			return nil, fmt.Errorf("event stream: %w", err)
		}
	}

	stream, err := frames.Decode(text, c.opts.Frames)
	if err != nil {
		return nil, fmt.Errorf("event stream: %w", err)
	}

	if n := len(stream.Padding); n > 0 {
		c.log.Debug().Int("frames", n).Msg("discarded padding frames")
	}
	if stream.Seed != nil {
		c.log.Debug().Int32("seed", *stream.Seed).Msg("extracted seed frame")
	}

	return &EventData{
		Events:  InterpretAll(mode, stream.Frames),
		Seed:    stream.Seed,
		Padding: stream.Padding,
	}, nil
}

// IsMalformed reports whether err is a format error in the input, as opposed
// to a compression failure.
func IsMalformed(err error) bool {
	return errors.Is(err, codec.ErrTruncated) ||
		errors.Is(err, codec.ErrMalformedField) ||
		errors.Is(err, codec.ErrMalformedFrame) ||
		errors.Is(err, codec.ErrMalformedLifeBar) ||
		errors.Is(err, codec.ErrEncoding)
}
