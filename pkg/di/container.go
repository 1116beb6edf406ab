// Package di provides dependency injection container
package di

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ssargent/osr/pkg/api" //nolint:depguard
	"github.com/ssargent/osr/pkg/config"
	"github.com/ssargent/osr/pkg/replay"
	"github.com/ssargent/osr/pkg/storage"
)

// Archive is a replay archive that must be closed after use
type Archive interface {
	api.ReplayArchive
	Close() error
}

// ArchiveOpener opens the archive under a data directory
type ArchiveOpener func(dataDir string) (Archive, error)

// OpenPebbleArchive opens the pebble archive in dataDir/replays
func OpenPebbleArchive(dataDir string) (Archive, error) {
	dir := filepath.Join(dataDir, "replays")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	archive, err := storage.Open(dir)
	if err != nil {
		return nil, err
	}
	return archive, nil
}

// Container holds all the dependencies for the application
type Container struct {
	config        *config.Config
	logger        zerolog.Logger
	codec         *replay.Codec
	serverFactory api.ServerFactory
	openArchive   ArchiveOpener
}

// NewContainer creates a new dependency injection container with the
// default configuration
func NewContainer() *Container {
	c := &Container{
		serverFactory: api.NewServerFactory(),
		openArchive:   OpenPebbleArchive,
		logger:        zerolog.Nop(),
	}
	if err := c.Configure(config.DefaultConfig(), io.Discard); err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return c
}

// Configure rebuilds the logger and codec from cfg. Logs go to logOut.
func (c *Container) Configure(cfg *config.Config, logOut io.Writer) error {
	logger, err := cfg.Logging.NewLogger(logOut)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	opts, err := cfg.Codec.Options()
	if err != nil {
		return fmt.Errorf("codec: %w", err)
	}
	opts.Logger = logger

	c.config = cfg
	c.logger = logger
	c.codec = replay.NewCodec(opts)
	return nil
}

// GetConfig returns the active configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLogger returns the application logger
func (c *Container) GetLogger() zerolog.Logger {
	return c.logger
}

// GetCodec returns the replay codec built from the configuration
func (c *Container) GetCodec() *replay.Codec {
	return c.codec
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// OpenArchive opens the archive in the configured data directory
func (c *Container) OpenArchive() (Archive, error) {
	return c.openArchive(c.config.DataDir)
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

// SetArchiveOpener allows overriding how archives are opened (for testing)
func (c *Container) SetArchiveOpener(opener ArchiveOpener) {
	c.openArchive = opener
}
