// Package compress wraps LZMA ("lzma alone" container) as the byte stream
// transform used for replay event data.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ssargent/osr/pkg/codec"
	"github.com/ulikunitz/xz/lzma"
)

// Preset is the speed/size trade-off knob, 0 (fastest) to 9 (smallest).
// It never affects decodability.
type Preset int

const (
	MinPreset     Preset = 0
	MaxPreset     Preset = 9
	DefaultPreset Preset = 6
)

// dictionary capacities per preset, following the xz preset table
var presetDictCap = [...]int{
	256 << 10,
	1 << 20,
	2 << 20,
	4 << 20,
	4 << 20,
	8 << 20,
	8 << 20,
	16 << 20,
	32 << 20,
	64 << 20,
}

// Clamp returns p limited to the valid preset range
func (p Preset) Clamp() Preset {
	if p < MinPreset {
		return MinPreset
	}
	if p > MaxPreset {
		return MaxPreset
	}
	return p
}

// DictCap returns the LZMA dictionary capacity used for p
func (p Preset) DictCap() int {
	return presetDictCap[p.Clamp()]
}

// Compressor is an immutable compression configuration. The zero value uses
// preset 0 and no output limit; use NewCompressor for the defaults.
type Compressor struct {
	Preset Preset
	// MaxDecompressedSize bounds Decompress output. Zero disables the limit.
	MaxDecompressedSize int64
}

// NewCompressor creates a compressor with the given preset
func NewCompressor(preset Preset) Compressor {
	return Compressor{Preset: preset.Clamp()}
}

// Compress encodes data as an LZMA stream with the uncompressed size stored
// in the header. Output is deterministic for a given preset.
func (c Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	cfg := lzma.WriterConfig{
		Properties:   &lzma.Properties{LC: 3, LP: 0, PB: 2},
		DictCap:      c.Preset.DictCap(),
		SizeInHeader: true,
		Size:         int64(len(data)),
	}

	w, err := cfg.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("%w: create lzma writer: %w", codec.ErrCompression, err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: write lzma stream: %w", codec.ErrCompression, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: close lzma stream: %w", codec.ErrCompression, err)
	}

	return buf.Bytes(), nil
}

// Decompress decodes an LZMA stream. Corrupt input yields an error wrapping
// codec.ErrCompression and the library's diagnostic.
func (c Compressor) Decompress(data []byte) ([]byte, error) {
	r, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: read lzma header: %w", codec.ErrCompression, err)
	}

	var src io.Reader = r
	if c.MaxDecompressedSize > 0 {
		src = io.LimitReader(r, c.MaxDecompressedSize+1)
	}

	out, err := io.ReadAll(src)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: lzma stream ends early: %w", codec.ErrCompression, err)
		}
		return nil, fmt.Errorf("%w: decode lzma stream: %w", codec.ErrCompression, err)
	}
	if c.MaxDecompressedSize > 0 && int64(len(out)) > c.MaxDecompressedSize {
		return nil, fmt.Errorf("%w: decompressed data exceeds %d bytes", codec.ErrCompression, c.MaxDecompressedSize)
	}

	return out, nil
}
