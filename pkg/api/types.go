package api

import (
	"github.com/ssargent/osr/pkg/frames"
	"github.com/ssargent/osr/pkg/replay"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string
	// MaxBodyBytes bounds uploaded replays. Zero uses DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// DefaultMaxBodyBytes is the upload limit when ServerConfig sets none
const DefaultMaxBodyBytes int64 = 32 << 20

// DecodeResponse is the decoded view of an uploaded replay
type DecodeResponse struct {
	Summary replay.Summary        `json:"summary"`
	LifeBar []replay.LifeBarFrame `json:"life_bar,omitempty"`
	Events  []replay.ReplayEvent  `json:"events,omitempty"`
	Padding []frames.Frame        `json:"padding,omitempty"`
}

// ArchiveResponse is returned after a replay is archived
type ArchiveResponse struct {
	ID      string         `json:"id"`
	Summary replay.Summary `json:"summary"`
}

// ListResponse lists archived replay ids, oldest first
type ListResponse struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}
