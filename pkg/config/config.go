/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/osr/pkg/compress"
	"github.com/ssargent/osr/pkg/frames"
	"github.com/ssargent/osr/pkg/replay"
)

// Config represents the osr tool and server configuration
type Config struct {
	DataDir  string   `yaml:"data_dir"`
	Port     int      `yaml:"port"`
	Bind     string   `yaml:"bind"`
	Security Security `yaml:"security"`
	Logging  Logging  `yaml:"logging"`
	Codec    Codec    `yaml:"codec"`
}

// Security contains security-related configuration
type Security struct {
	APIKey string `yaml:"api_key"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// Codec contains replay codec settings
type Codec struct {
	Preset               int    `yaml:"preset"`
	Padding              string `yaml:"padding"`    // default, zero, lazer or none
	SeedField            string `yaml:"seed_field"` // x or keys
	MaxDecompressedBytes int64  `yaml:"max_decompressed_bytes"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Port:    8080,
		Bind:    "127.0.0.1",
		Security: Security{
			APIKey: "auto",
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		Codec: Codec{
			Preset:               int(compress.DefaultPreset),
			Padding:              "default",
			SeedField:            "x",
			MaxDecompressedBytes: replay.DefaultMaxDecompressedSize,
		},
	}
}

// paddingPolicies maps config names to frame padding policies
var paddingPolicies = map[string]frames.PaddingPolicy{
	"default": frames.DefaultPadding,
	"zero":    frames.ZeroPadding,
	"lazer":   frames.LazerPadding,
	"none":    frames.KeepAll,
}

// Options converts the codec settings to replay options. The logger is left
// as a no-op; callers attach their own.
func (c Codec) Options() (replay.Options, error) {
	opts := replay.DefaultOptions()

	if c.Preset < int(compress.MinPreset) || c.Preset > int(compress.MaxPreset) {
		return opts, fmt.Errorf("codec preset %d out of range %d..%d", c.Preset, compress.MinPreset, compress.MaxPreset)
	}
	opts.Preset = compress.Preset(c.Preset)

	padding := strings.ToLower(c.Padding)
	if padding == "" {
		padding = "default"
	}
	policy, ok := paddingPolicies[padding]
	if !ok {
		return opts, fmt.Errorf("unknown padding policy %q", c.Padding)
	}
	opts.Frames.Padding = policy

	switch strings.ToLower(c.SeedField) {
	case "", "x":
		opts.Frames.SeedField = frames.SeedInX
	case "keys":
		opts.Frames.SeedField = frames.SeedInKeys
	default:
		return opts, fmt.Errorf("unknown seed field %q", c.SeedField)
	}

	if c.MaxDecompressedBytes < 0 {
		return opts, fmt.Errorf("max_decompressed_bytes must not be negative")
	}
	opts.MaxDecompressedSize = c.MaxDecompressedBytes

	return opts, nil
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Missing keys keep their defaults
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// BootstrapConfig writes a new configuration with a generated API key
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	apiKey, err := GenerateSecureKey(32) // 256 bits
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.Security.APIKey = apiKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./osr.yaml"
	}

	// ~/.config/osr/config.yaml
	return filepath.Join(homeDir, ".config", "osr", "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
