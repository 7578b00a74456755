package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"taskflow/log"
)

const StateFileName = "state.json"

// State holds persisted UI state. The dark-mode preference is deliberately
// the only thing that survives a restart: messages, tasks, and connection
// state are rebuilt fresh on every run.
type State struct {
	// DarkMode is the persisted theme preference.
	DarkMode bool `json:"dark_mode"`

	// path is the file the state was loaded from, "" when load failed.
	path string
}

// DefaultState returns the default state.
func DefaultState() *State {
	return &State{DarkMode: false}
}

// LoadState reads state.json from the config directory, returning defaults
// when the file is missing or unreadable.
func LoadState() *State {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultState()
	}

	statePath := filepath.Join(configDir, StateFileName)
	state := DefaultState()
	state.path = statePath

	data, err := os.ReadFile(statePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WarningLog.Printf("failed to read state file: %v", err)
		}
		return state
	}

	if err := json.Unmarshal(data, state); err != nil {
		log.ErrorLog.Printf("failed to parse state file: %v", err)
		return DefaultState()
	}
	state.path = statePath
	return state
}

// SetDarkMode updates the preference and saves immediately (save-on-change).
func (s *State) SetDarkMode(enabled bool) {
	s.DarkMode = enabled
	if err := s.Save(); err != nil {
		log.WarningLog.Printf("failed to save state: %v", err)
	}
}

// Save writes the state to disk.
func (s *State) Save() error {
	if s.path == "" {
		return fmt.Errorf("state has no backing file")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	return os.WriteFile(s.path, data, 0644)
}

// LoadStateFrom reads state from an explicit path, for tests.
func LoadStateFrom(path string) *State {
	state := DefaultState()
	state.path = path
	data, err := os.ReadFile(path)
	if err != nil {
		return state
	}
	if err := json.Unmarshal(data, state); err != nil {
		return DefaultState()
	}
	state.path = path
	return state
}
