// Package config loads session configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Tbit256/Process-Flowchart/pkg/validation"
)

// Config holds all configuration for an editing session
type Config struct {
	Log     LogConfig
	Session SessionConfig
	Wire    WireConfig
}

// LogConfig selects logger level and encoding
type LogConfig struct {
	Level  string `json:"log_level" validate:"oneof=debug info warn error"`
	Format string `json:"log_format" validate:"oneof=json console"`
}

// SessionConfig controls id minting and store policy
type SessionConfig struct {
	NodeIDPrefix       string `json:"node_id_prefix" validate:"required,max=32"`
	EdgeIDPrefix       string `json:"edge_id_prefix" validate:"required,max=32"`
	DefaultEdgeColor   string `json:"default_edge_color" validate:"required,hexcolor"`
	CascadeNodeRemoval bool   `json:"cascade_node_removal"`
}

// WireConfig selects the renderer bridge encoding
type WireConfig struct {
	Codec       string `json:"wire_codec" validate:"oneof=json msgpack"`
	Compression string `json:"wire_compression" validate:"oneof=none gzip zstd"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "json"},
		Session: SessionConfig{
			NodeIDPrefix:     "node_",
			EdgeIDPrefix:     "edge-",
			DefaultEdgeColor: "#64748b",
		},
		Wire: WireConfig{Codec: "json", Compression: "none"},
	}
}

// Load reads configuration from environment variables after an optional .env file
func Load(envFiles ...string) (*Config, error) {
	// Missing .env files are fine
	_ = godotenv.Load(envFiles...)

	d := Default()
	cfg := &Config{
		Log: LogConfig{
			Level:  getEnvWithDefault("FLOWCHART_LOG_LEVEL", d.Log.Level),
			Format: getEnvWithDefault("FLOWCHART_LOG_FORMAT", d.Log.Format),
		},
		Session: SessionConfig{
			NodeIDPrefix:       getEnvWithDefault("FLOWCHART_NODE_ID_PREFIX", d.Session.NodeIDPrefix),
			EdgeIDPrefix:       getEnvWithDefault("FLOWCHART_EDGE_ID_PREFIX", d.Session.EdgeIDPrefix),
			DefaultEdgeColor:   getEnvWithDefault("FLOWCHART_DEFAULT_EDGE_COLOR", d.Session.DefaultEdgeColor),
			CascadeNodeRemoval: getEnvAsBool("FLOWCHART_CASCADE_NODE_REMOVAL", false),
		},
		Wire: WireConfig{
			Codec:       getEnvWithDefault("FLOWCHART_WIRE_CODEC", d.Wire.Codec),
			Compression: getEnvWithDefault("FLOWCHART_WIRE_COMPRESSION", d.Wire.Compression),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validation.ValidateWithPlayground(c); err != nil {
		return err
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if valueStr := os.Getenv(key); valueStr != "" {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
