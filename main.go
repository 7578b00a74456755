package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"taskflow/app"
	"taskflow/config"
	"taskflow/config/eventlog"
	sentrypkg "taskflow/internal/sentry"
	"taskflow/log"
)

var (
	version    = "0.3.0"
	apiURLFlag string
	wsURLFlag  string
	rootCmd    = &cobra.Command{
		Use:   "taskflow",
		Short: "taskflow - A task manager with an AI agent in the left pane.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg := config.LoadConfig()
			if apiURLFlag != "" {
				cfg.APIBaseURL = apiURLFlag
			}
			if wsURLFlag != "" {
				cfg.WSBaseURL = wsURLFlag
			}

			if err := sentrypkg.Init(version, cfg.IsTelemetryEnabled()); err != nil {
				// Non-fatal: sentry failure should not prevent startup
				_ = err
			}
			defer sentrypkg.Flush()
			defer sentrypkg.RecoverPanic()
			sentrypkg.SetContext(cfg.APIBaseURL, cfg.WSBaseURL)

			log.Initialize()
			defer log.Close()

			events := openEventLog(cfg)

			return app.Run(ctx, cfg, events)
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of taskflow",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("taskflow version %s\n", version)
		},
	}
)

// openEventLog opens the SQLite diagnostic event log, falling back to a no-op
// logger when disabled or broken.
func openEventLog(cfg *config.Config) eventlog.Logger {
	if !cfg.IsEventLogEnabled() {
		return eventlog.NopLogger()
	}
	configDir, err := config.GetConfigDir()
	if err != nil {
		log.WarningLog.Printf("event log disabled: %v", err)
		return eventlog.NopLogger()
	}
	events, err := eventlog.NewSQLiteLogger(filepath.Join(configDir, "events.db"))
	if err != nil {
		log.WarningLog.Printf("event log disabled: %v", err)
		return eventlog.NopLogger()
	}
	return events
}

func init() {
	rootCmd.Flags().StringVar(&apiURLFlag, "api-url", "", "Base URL for REST requests (overrides config)")
	rootCmd.Flags().StringVar(&wsURLFlag, "ws-url", "", "Base URL for the sync channels (overrides config)")

	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newEventsCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errUnhealthy) {
			os.Exit(1)
		}
		fmt.Println(err)
	}
}
