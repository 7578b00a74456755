package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"taskflow/log"
)

const (
	ConfigFileName = "config.json"

	// Production backend defaults; overridable via config file or environment.
	defaultAPIBaseURL = "https://task-management-agent-backend-production.up.railway.app"
	defaultWSBaseURL  = "wss://task-management-agent-backend-production.up.railway.app"

	// Environment overrides, applied after file config.
	envAPIBaseURL = "TASKFLOW_API_URL"
	envWSBaseURL  = "TASKFLOW_WS_URL"
)

// GetConfigDir returns the path to the application's configuration directory,
// XDG-compliant ~/.config/taskflow/.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "taskflow"), nil
}

// Config represents the application configuration.
type Config struct {
	// APIBaseURL is the base URL for REST requests.
	APIBaseURL string `json:"api_base_url"`
	// WSBaseURL is the base URL for the chat and task sync WebSocket channels.
	WSBaseURL string `json:"ws_base_url"`
	// TelemetryEnabled controls whether crash reporting via Sentry is active.
	// Defaults to true when not set.
	TelemetryEnabled *bool `json:"telemetry_enabled,omitempty"`
	// EventLogEnabled controls the local SQLite diagnostic event log.
	// Defaults to true when not set.
	EventLogEnabled *bool `json:"event_log_enabled,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL: defaultAPIBaseURL,
		WSBaseURL:  defaultWSBaseURL,
	}
}

// IsTelemetryEnabled returns whether Sentry telemetry is enabled.
// Defaults to true when the field is not set.
func (c *Config) IsTelemetryEnabled() bool {
	if c.TelemetryEnabled == nil {
		return true
	}
	return *c.TelemetryEnabled
}

// IsEventLogEnabled returns whether the diagnostic event log is enabled.
// Defaults to true when the field is not set.
func (c *Config) IsEventLogEnabled() bool {
	if c.EventLogEnabled == nil {
		return true
	}
	return *c.EventLogEnabled
}

// ChatSocketURL returns the full URL of the chat channel endpoint.
func (c *Config) ChatSocketURL() string {
	return c.WSBaseURL + "/api/chat/ws"
}

// TaskSocketURL returns the full URL of the task sync channel endpoint.
func (c *Config) TaskSocketURL() string {
	return c.WSBaseURL + "/api/chat/ws/tasks"
}

// LoadConfig reads config.json from the config directory, overlays config.toml
// (TOML is authority for the fields it sets), then applies environment
// overrides. Any failure falls back to defaults so startup never blocks on a
// broken config file.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return applyEnv(DefaultConfig())
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return applyEnv(overlayTOML(defaultCfg))
		}

		log.WarningLog.Printf("failed to read config file: %v", err)
		return applyEnv(DefaultConfig())
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return applyEnv(DefaultConfig())
	}
	if config.APIBaseURL == "" {
		config.APIBaseURL = defaultAPIBaseURL
	}
	if config.WSBaseURL == "" {
		config.WSBaseURL = defaultWSBaseURL
	}

	return applyEnv(overlayTOML(&config))
}

// overlayTOML applies config.toml on top of the JSON config if it exists.
func overlayTOML(config *Config) *Config {
	tomlResult, tomlErr := LoadTOMLConfig()
	if tomlErr != nil {
		log.WarningLog.Printf("failed to load TOML config: %v", tomlErr)
		return config
	}
	if tomlResult == nil {
		return config
	}
	if tomlResult.APIBaseURL != "" {
		config.APIBaseURL = tomlResult.APIBaseURL
	}
	if tomlResult.WSBaseURL != "" {
		config.WSBaseURL = tomlResult.WSBaseURL
	}
	if tomlResult.TelemetryEnabled != nil {
		config.TelemetryEnabled = tomlResult.TelemetryEnabled
	}
	if tomlResult.EventLogEnabled != nil {
		config.EventLogEnabled = tomlResult.EventLogEnabled
	}
	return config
}

// applyEnv applies environment variable overrides, highest precedence.
func applyEnv(config *Config) *Config {
	if v := os.Getenv(envAPIBaseURL); v != "" {
		config.APIBaseURL = v
	}
	if v := os.Getenv(envWSBaseURL); v != "" {
		config.WSBaseURL = v
	}
	return config
}

// saveConfig saves the configuration to disk.
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages.
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
