package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("FLOWCHART_LOG_LEVEL", "debug")
	t.Setenv("FLOWCHART_LOG_FORMAT", "console")
	t.Setenv("FLOWCHART_NODE_ID_PREFIX", "n")
	t.Setenv("FLOWCHART_CASCADE_NODE_REMOVAL", "true")
	t.Setenv("FLOWCHART_WIRE_CODEC", "msgpack")
	t.Setenv("FLOWCHART_WIRE_COMPRESSION", "zstd")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "n", cfg.Session.NodeIDPrefix)
	assert.True(t, cfg.Session.CascadeNodeRemoval)
	assert.Equal(t, "msgpack", cfg.Wire.Codec)
	assert.Equal(t, "zstd", cfg.Wire.Compression)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FLOWCHART_EDGE_ID_PREFIX=conn-\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("FLOWCHART_EDGE_ID_PREFIX") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "conn-", cfg.Session.EdgeIDPrefix)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad level", "FLOWCHART_LOG_LEVEL", "loud"},
		{"bad color", "FLOWCHART_DEFAULT_EDGE_COLOR", "gray"},
		{"bad codec", "FLOWCHART_WIRE_CODEC", "xml"},
		{"bad compression", "FLOWCHART_WIRE_COMPRESSION", "lz4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
