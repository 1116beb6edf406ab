package cmd

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/osr/pkg/api"
	"github.com/ssargent/osr/pkg/compress"
	"github.com/ssargent/osr/pkg/di"
	"github.com/ssargent/osr/pkg/frames"
	"github.com/ssargent/osr/pkg/replay"
)

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command with a fresh container and a config path
// that does not exist unless the test creates it
func run(t *testing.T, c *di.Container, configPath string, args ...string) (string, error) {
	t.Helper()
	if c == nil {
		c = di.NewContainer()
	}
	if configPath == "" {
		configPath = filepath.Join(t.TempDir(), "missing.yaml")
	}
	SetContainer(c)
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", configPath))
	err := rootCmd.Execute()
	return out.String(), err
}

// framesFor builds a frame every mode interprets without losing data
func framesFor(delta int64, keys uint32) frames.Frame {
	return frames.Frame{TimeDelta: delta, Keys: keys}
}

func writeSample(t *testing.T, mode replay.GameMode) string {
	t.Helper()
	seed := int32(777)
	rep := &replay.Replay{
		Mode:        mode,
		Version:     20220101,
		BeatmapHash: "beatmap-md5",
		PlayerName:  "WhiteCat",
		Score:       1000000,
		MaxCombo:    2000,
		Perfect:     true,
		Mods:        replay.ModDoubleTime | replay.ModHidden,
		LifeBar:     []replay.LifeBarFrame{{Time: 0, Percentage: 1}, {Time: 5000, Percentage: 0.5}},
		Events: []replay.ReplayEvent{
			replay.Interpret(mode, framesFor(16, 1)),
			replay.Interpret(mode, framesFor(17, 5)),
		},
		ReplayID: replay.WideReplayID(123),
		Seed:     &seed,
	}
	data, err := replay.Encode(rep)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sample.osr")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestRootRequiresContainer(t *testing.T) {
	SetContainer(nil)
	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"inspect", "x.osr"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dependency container not initialized")
}

func TestInspect(t *testing.T) {
	path := writeSample(t, replay.ModeStandard)

	out, err := run(t, nil, "", "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "WhiteCat")
	assert.Contains(t, out, "HD,DT")
	assert.Contains(t, out, "123 (64-bit)")
	assert.Contains(t, out, "Seed:")
	assert.NotContains(t, out, "DELTA")

	out, err = run(t, nil, "", "inspect", path, "--events")
	require.NoError(t, err)
	assert.Contains(t, out, "DELTA")
}

func TestInspect_JSON(t *testing.T) {
	path := writeSample(t, replay.ModeCatch)

	out, err := run(t, nil, "", "inspect", path, "--json", "--events")
	require.NoError(t, err)

	var resp struct {
		Summary struct {
			Mode       string `json:"mode"`
			PlayerName string `json:"player_name"`
		} `json:"summary"`
		Events []map[string]interface{} `json:"events"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "catch", resp.Summary.Mode)
	assert.Equal(t, "WhiteCat", resp.Summary.PlayerName)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, true, resp.Events[1]["dashing"])
}

func TestInspect_Errors(t *testing.T) {
	_, err := run(t, nil, "", "inspect", filepath.Join(t.TempDir(), "nope.osr"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.osr")
	require.NoError(t, os.WriteFile(bad, []byte{0, 1, 2}, 0600))
	_, err = run(t, nil, "", "inspect", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestRepack(t *testing.T) {
	path := writeSample(t, replay.ModeMania)
	outPath := filepath.Join(t.TempDir(), "out.osr")

	out, err := run(t, nil, "", "repack", path, outPath, "--preset", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	orig, err := os.ReadFile(path)
	require.NoError(t, err)
	repacked, err := os.ReadFile(outPath)
	require.NoError(t, err)

	a, err := replay.Decode(orig)
	require.NoError(t, err)
	b, err := replay.Decode(repacked)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = run(t, nil, "", "repack", path, outPath, "--preset", "12")
	assert.Error(t, err)
}

func TestParseData(t *testing.T) {
	blob, err := compress.NewCompressor(compress.DefaultPreset).Compress([]byte("16|0|0|5,16|0|0|0,-12345|0|0|31,"))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte(base64.StdEncoding.EncodeToString(blob)), 0600))

	out, err := run(t, nil, "", "parse-data", path, "--base64", "--mode", "mania")
	require.NoError(t, err)
	assert.Contains(t, out, "Seed: 31")
	assert.Contains(t, out, "LANES")
	assert.Contains(t, out, "1,3")

	out, err = run(t, nil, "", "parse-data", path, "--base64", "--mode", "taiko", "--json")
	require.NoError(t, err)
	var data struct {
		Events []map[string]interface{} `json:"events"`
		Seed   int32                    `json:"seed"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &data))
	assert.Len(t, data.Events, 2)
	assert.Equal(t, int32(31), data.Seed)

	_, err = run(t, nil, "", "parse-data", path, "--mode", "piano")
	assert.Error(t, err)

	// not base64-decoded, so the LZMA header is garbage
	_, err = run(t, nil, "", "parse-data", path)
	assert.Error(t, err)
}

func TestArchiveCommands(t *testing.T) {
	dataDir := t.TempDir()
	path := writeSample(t, replay.ModeTaiko)

	out, err := run(t, nil, "", "archive", "put", path, "--data-dir", dataDir)
	require.NoError(t, err)
	fields := strings.Fields(out)
	require.NotEmpty(t, fields)
	id := fields[0]
	assert.Contains(t, out, "WhiteCat")

	out, err = run(t, nil, "", "archive", "list", "--data-dir", dataDir, "--json")
	require.NoError(t, err)
	var list api.ListResponse
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Equal(t, []string{id}, list.IDs)

	out, err = run(t, nil, "", "archive", "get", id, "--data-dir", dataDir)
	require.NoError(t, err)
	assert.Contains(t, out, "taiko")

	dest := filepath.Join(t.TempDir(), "fetched.osr")
	_, err = run(t, nil, "", "archive", "get", id, dest, "--data-dir", dataDir)
	require.NoError(t, err)
	orig, _ := os.ReadFile(path)
	fetched, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, orig, fetched)

	_, err = run(t, nil, "", "archive", "delete", id, "--data-dir", dataDir)
	require.NoError(t, err)

	out, err = run(t, nil, "", "archive", "list", "--data-dir", dataDir)
	require.NoError(t, err)
	assert.Contains(t, out, "No replays found")

	_, err = run(t, nil, "", "archive", "delete", id, "--data-dir", dataDir)
	assert.Error(t, err)

	_, err = run(t, nil, "", "archive", "get", "not-an-id", "--data-dir", dataDir)
	assert.Error(t, err)
}

// fakeStarter records the server config instead of listening
type fakeStarter struct {
	config  api.ServerConfig
	started bool
}

func (f *fakeStarter) StartServer(ctx context.Context, archive api.ReplayArchive, codec *replay.Codec, config api.ServerConfig, log zerolog.Logger) error {
	f.started = true
	f.config = config
	return nil
}

type fakeFactory struct{ starter *fakeStarter }

func (f fakeFactory) CreateServerStarter() api.ServerStarter { return f.starter }

func TestServe_Bootstrap(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	dataDir := filepath.Join(tmpDir, "data")

	starter := &fakeStarter{}
	c := di.NewContainer()
	c.SetServerFactory(fakeFactory{starter: starter})

	out, err := run(t, c, configPath, "serve", "--data-dir", dataDir, "--port", "9123", "--print-key")
	require.NoError(t, err)

	assert.Contains(t, out, "Configuration created")
	assert.Contains(t, out, "API Key:")
	assert.FileExists(t, configPath)

	require.True(t, starter.started)
	assert.Equal(t, 9123, starter.config.Port)
	assert.Equal(t, "127.0.0.1", starter.config.Bind)
	assert.Len(t, starter.config.APIKey, 64)
	assert.DirExists(t, filepath.Join(dataDir, "replays"))
}

func TestServe_ExistingConfigWithoutKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("port: 9000\n"), 0600))

	starter := &fakeStarter{}
	c := di.NewContainer()
	c.SetServerFactory(fakeFactory{starter: starter})

	_, err := run(t, c, configPath, "serve", "--data-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no API key")
	assert.False(t, starter.started)
}

func TestLogLevelFlag(t *testing.T) {
	c := di.NewContainer()
	_, err := run(t, c, "", "inspect", writeSample(t, replay.ModeStandard), "--log-level", "debug")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, c.GetLogger().GetLevel())

	_, err = run(t, nil, "", "inspect", writeSample(t, replay.ModeStandard), "--log-level", "chatty")
	assert.Error(t, err)
}
