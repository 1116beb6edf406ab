// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/osr/pkg/replay"
)

// ReplayArchive stores encoded replays. storage.Archive implements it.
type ReplayArchive interface {
	Put(data []byte) (ksuid.KSUID, error)
	Get(id ksuid.KSUID) ([]byte, error)
	Delete(id ksuid.KSUID) error
	List(limit int) ([]ksuid.KSUID, error)
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves until ctx is cancelled or the listener fails
	StartServer(ctx context.Context, archive ReplayArchive, codec *replay.Codec, config ServerConfig, log zerolog.Logger) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
