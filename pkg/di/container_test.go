package di

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/osr/pkg/compress"
	"github.com/ssargent/osr/pkg/config"
	"github.com/ssargent/osr/pkg/frames"
)

func TestNewContainer(t *testing.T) {
	c := NewContainer()

	require.NotNil(t, c.GetConfig())
	require.NotNil(t, c.GetCodec())
	require.NotNil(t, c.GetServerFactory())
	assert.Equal(t, compress.DefaultPreset, c.GetCodec().Options().Preset)
}

func TestContainer_Configure(t *testing.T) {
	c := NewContainer()
	cfg := config.DefaultConfig()
	cfg.Codec.Preset = 2
	cfg.Codec.SeedField = "keys"
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "debug"

	var logs bytes.Buffer
	require.NoError(t, c.Configure(cfg, &logs))

	opts := c.GetCodec().Options()
	assert.Equal(t, compress.Preset(2), opts.Preset)
	assert.Equal(t, frames.SeedInKeys, opts.Frames.SeedField)
	assert.Same(t, cfg, c.GetConfig())

	log := c.GetLogger()
	log.Debug().Msg("configured")
	assert.Contains(t, logs.String(), `"message":"configured"`)
}

func TestContainer_ConfigureRejectsBadConfig(t *testing.T) {
	c := NewContainer()
	before := c.GetCodec()

	cfg := config.DefaultConfig()
	cfg.Codec.Padding = "bogus"
	assert.Error(t, c.Configure(cfg, &bytes.Buffer{}))

	cfg = config.DefaultConfig()
	cfg.Logging.Level = "shout"
	assert.Error(t, c.Configure(cfg, &bytes.Buffer{}))

	assert.Same(t, before, c.GetCodec())
}

func TestContainer_OpenArchive(t *testing.T) {
	c := NewContainer()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	require.NoError(t, c.Configure(cfg, &bytes.Buffer{}))

	archive, err := c.OpenArchive()
	require.NoError(t, err)
	defer archive.Close()

	id, err := archive.Put([]byte("data"))
	require.NoError(t, err)
	got, err := archive.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)
}
