package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Contains(t, cfg.APIBaseURL, "https://")
	assert.Contains(t, cfg.WSBaseURL, "wss://")
	assert.True(t, cfg.IsTelemetryEnabled(), "telemetry defaults on")
	assert.True(t, cfg.IsEventLogEnabled(), "event log defaults on")
}

func TestSocketURLs(t *testing.T) {
	cfg := &Config{WSBaseURL: "ws://localhost:8000"}
	assert.Equal(t, "ws://localhost:8000/api/chat/ws", cfg.ChatSocketURL())
	assert.Equal(t, "ws://localhost:8000/api/chat/ws/tasks", cfg.TaskSocketURL())
}

func TestToggleAccessors(t *testing.T) {
	off := false
	cfg := &Config{TelemetryEnabled: &off, EventLogEnabled: &off}
	assert.False(t, cfg.IsTelemetryEnabled())
	assert.False(t, cfg.IsEventLogEnabled())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(envAPIBaseURL, "http://localhost:8000")
	t.Setenv(envWSBaseURL, "ws://localhost:8000")

	cfg := applyEnv(DefaultConfig())
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, "ws://localhost:8000", cfg.WSBaseURL)
}

func TestLoadTOMLConfigFrom(t *testing.T) {
	t.Run("parses valid TOML", func(t *testing.T) {
		tomlPath := filepath.Join(t.TempDir(), "config.toml")
		content := `
api_base_url = "http://staging.example.com"
ws_base_url = "ws://staging.example.com"
telemetry_enabled = false
`
		require.NoError(t, os.WriteFile(tomlPath, []byte(content), 0o644))

		tc, err := LoadTOMLConfigFrom(tomlPath)
		require.NoError(t, err)
		assert.Equal(t, "http://staging.example.com", tc.APIBaseURL)
		assert.Equal(t, "ws://staging.example.com", tc.WSBaseURL)
		require.NotNil(t, tc.TelemetryEnabled)
		assert.False(t, *tc.TelemetryEnabled)
		assert.Nil(t, tc.EventLogEnabled)
	})

	t.Run("errors on missing file", func(t *testing.T) {
		_, err := LoadTOMLConfigFrom("/nonexistent/config.toml")
		assert.Error(t, err)
	})

	t.Run("errors on malformed TOML", func(t *testing.T) {
		tomlPath := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(tomlPath, []byte("api_base_url = [broken"), 0o644))
		_, err := LoadTOMLConfigFrom(tomlPath)
		assert.Error(t, err)
	})
}

func TestSaveTOMLConfigRoundTrip(t *testing.T) {
	tomlPath := filepath.Join(t.TempDir(), "config.toml")
	off := false
	original := &TOMLConfig{
		APIBaseURL:       "http://localhost:9000",
		TelemetryEnabled: &off,
	}

	require.NoError(t, SaveTOMLConfigTo(original, tomlPath))

	loaded, err := LoadTOMLConfigFrom(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, original.APIBaseURL, loaded.APIBaseURL)
	require.NotNil(t, loaded.TelemetryEnabled)
	assert.False(t, *loaded.TelemetryEnabled)
}
