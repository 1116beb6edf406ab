package replay

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/ssargent/osr/pkg/codec"
	"github.com/ssargent/osr/pkg/frames"
)

// EventData is the event stream of a replay without the surrounding header,
// as served by the online score API.
type EventData struct {
	Events  []ReplayEvent  `json:"events"`
	Seed    *int32         `json:"seed,omitempty"`
	Padding []frames.Frame `json:"padding,omitempty"`
}

// ParseReplayData parses an event stream fetched on its own. When isBase64 is
// set the blob is base64 text (standard alphabet, surrounding whitespace
// ignored); when isCompressed is set it is LZMA compressed. Base64 is undone
// first. An unknown mode is rejected like an unknown mode byte in Decode.
func (c *Codec) ParseReplayData(blob []byte, isBase64, isCompressed bool, mode GameMode) (*EventData, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("parse replay data: %w: unknown game mode %d", codec.ErrMalformedField, uint8(mode))
	}

	if isBase64 {
		raw, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(blob)))
		if err != nil {
			return nil, fmt.Errorf("parse replay data: %w: base64: %w", codec.ErrEncoding, err)
		}
		blob = raw
	}

	data, err := c.decodeEvents(blob, isCompressed, mode)
	if err != nil {
		return nil, fmt.Errorf("parse replay data: %w", err)
	}
	return data, nil
}
