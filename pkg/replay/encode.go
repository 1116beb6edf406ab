package replay

import (
	"errors"
	"fmt"
	"math"

	"github.com/ssargent/osr/pkg/codec"
	"github.com/ssargent/osr/pkg/frames"
)

// ErrNilReplay is returned by Encode when given a nil replay.
var ErrNilReplay = errors.New("nil replay")

// Encode writes r as a complete .osr file. The blob length is recomputed from
// the events; encoding fails only when compression does.
//
// When r carries no Padding, its leading events are checked against the
// codec's padding policy. Events the policy would strip (an all-zero first
// event, or events parked at x=256, y=-500 under the default policy) are
// still written, but decode back into Padding rather than Events, and a
// warning is logged. Decode with frames.KeepAll to read them back as events.
func (c *Codec) Encode(r *Replay) ([]byte, error) {
	if r == nil {
		return nil, ErrNilReplay
	}

	blob, err := c.encodeEvents(r)
	if err != nil {
		return nil, fmt.Errorf("encode replay: %w", err)
	}

	w := codec.NewWriter(128 + len(blob))
	w.U8(uint8(r.Mode))
	w.I32(r.Version)
	w.String(r.BeatmapHash)
	w.String(r.PlayerName)
	w.String(r.ReplayHash)
	w.U16(r.Count300)
	w.U16(r.Count100)
	w.U16(r.Count50)
	w.U16(r.CountGeki)
	w.U16(r.CountKatu)
	w.U16(r.CountMiss)
	w.I32(r.Score)
	w.U16(r.MaxCombo)
	if r.Perfect {
		w.U8(1)
	} else {
		w.U8(0)
	}
	w.U32(uint32(r.Mods))
	w.String(FormatLifeBar(r.LifeBar))
	w.I64(r.Timestamp)
	w.I32(int32(len(blob)))
	w.Raw(blob)

	id := r.ReplayID.Value()
	if UsesWideReplayID(r.Version) {
		w.U64(id)
	} else {
		if id > math.MaxUint32 {
			c.log.Warn().
				Uint64("replay_id", id).
				Int32("version", r.Version).
				Msg("replay id does not fit 32 bits for this version, truncating")
		}
		w.U32(uint32(id))
	}

	return w.Bytes(), nil
}

// encodeEvents compresses the event stream. A replay with no events, no seed
// and no padding has a zero-length blob.
func (c *Codec) encodeEvents(r *Replay) ([]byte, error) {
	if len(r.Events) == 0 && r.Seed == nil && len(r.Padding) == 0 {
		return nil, nil
	}

	fs := FlattenAll(r.Events)
	if len(r.Padding) == 0 && c.opts.Frames.Padding != nil {
		if n := c.opts.Frames.Padding(fs); n > 0 {
			c.log.Warn().
				Int("events", n).
				Interface("leading", r.Events[:n]).
				Msg("leading events look like padding and will decode into Padding")
		}
	}

	text := frames.Encode(frames.Stream{
		Padding: r.Padding,
		Frames:  fs,
		Seed:    r.Seed,
	}, c.opts.Frames)

	blob, err := c.compressor.Compress(text)
	if err != nil {
		return nil, fmt.Errorf("event stream: %w", err)
	}
	return blob, nil
}
