package replay

import (
	"github.com/rs/zerolog"

	"github.com/ssargent/osr/pkg/compress"
	"github.com/ssargent/osr/pkg/frames"
)

// DefaultMaxDecompressedSize bounds the decompressed event stream when the
// caller sets no limit of their own.
const DefaultMaxDecompressedSize int64 = 64 << 20

// Options configures a Codec.
type Options struct {
	// Preset is the LZMA preset used when encoding, 0 to 9
	Preset compress.Preset
	// Frames controls seed placement and padding detection
	Frames frames.Options
	// MaxDecompressedSize bounds the event stream. Zero disables the limit.
	MaxDecompressedSize int64
	Logger              zerolog.Logger
}

// DefaultOptions returns the options the package-level functions use
func DefaultOptions() Options {
	return Options{
		Preset:              compress.DefaultPreset,
		Frames:              frames.DefaultOptions(),
		MaxDecompressedSize: DefaultMaxDecompressedSize,
		Logger:              zerolog.Nop(),
	}
}

// Codec decodes and encodes replays. A Codec is immutable once created and
// safe for concurrent use.
type Codec struct {
	opts       Options
	compressor compress.Compressor
	log        zerolog.Logger
}

// NewCodec creates a codec from opts
func NewCodec(opts Options) *Codec {
	opts.Preset = opts.Preset.Clamp()
	return &Codec{
		opts: opts,
		compressor: compress.Compressor{
			Preset:              opts.Preset,
			MaxDecompressedSize: opts.MaxDecompressedSize,
		},
		log: opts.Logger.With().Str("component", "replay").Logger(),
	}
}

// Options returns the options the codec was built with
func (c *Codec) Options() Options {
	return c.opts
}

var defaultCodec = NewCodec(DefaultOptions())

// Decode decodes an .osr file with DefaultOptions
func Decode(data []byte) (*Replay, error) {
	return defaultCodec.Decode(data)
}

// Encode encodes a replay with DefaultOptions
func Encode(r *Replay) ([]byte, error) {
	return defaultCodec.Encode(r)
}

// ParseReplayData parses an API event blob with DefaultOptions
func ParseReplayData(blob []byte, isBase64, isCompressed bool, mode GameMode) (*EventData, error) {
	return defaultCodec.ParseReplayData(blob, isBase64, isCompressed, mode)
}
