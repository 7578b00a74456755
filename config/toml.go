package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const TOMLConfigFileName = "config.toml"

// TOMLConfig mirrors the subset of Config that may be set in config.toml.
// Fields present in the TOML file take authority over config.json.
type TOMLConfig struct {
	APIBaseURL       string `toml:"api_base_url,omitempty"`
	WSBaseURL        string `toml:"ws_base_url,omitempty"`
	TelemetryEnabled *bool  `toml:"telemetry_enabled,omitempty"`
	EventLogEnabled  *bool  `toml:"event_log_enabled,omitempty"`
}

// LoadTOMLConfig loads config.toml from the config directory.
// Returns (nil, nil) when the file does not exist.
func LoadTOMLConfig() (*TOMLConfig, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	path := filepath.Join(configDir, TOMLConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return LoadTOMLConfigFrom(path)
}

// LoadTOMLConfigFrom parses the TOML config at an explicit path.
func LoadTOMLConfigFrom(path string) (*TOMLConfig, error) {
	var tc TOMLConfig
	if _, err := toml.DecodeFile(path, &tc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &tc, nil
}

// SaveTOMLConfigTo writes the TOML config to an explicit path.
func SaveTOMLConfigTo(tc *TOMLConfig, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(tc); err != nil {
		return fmt.Errorf("failed to encode TOML config: %w", err)
	}
	return nil
}
