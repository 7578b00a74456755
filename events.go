package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"taskflow/config"
	"taskflow/config/eventlog"
)

func newEventsCmd() *cobra.Command {
	var (
		channel string
		kinds   []string
		limit   int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Print recent sync diagnostic events",
		Long: `Queries the local event log and prints recent entries, newest first.

The log records channel lifecycle (connects, reconnects, exhausted retries),
protocol anomalies (unknown frame types, malformed snapshots) and failed
REST requests. Filter with --channel and --kind.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("get config directory: %w", err)
			}

			logger, err := eventlog.NewSQLiteLogger(filepath.Join(configDir, "events.db"))
			if err != nil {
				return fmt.Errorf("open event log: %w", err)
			}
			defer logger.Close()

			filter := eventlog.QueryFilter{
				Channel: channel,
				Limit:   limit,
			}
			for _, k := range kinds {
				filter.Kinds = append(filter.Kinds, eventlog.EventKind(k))
			}

			events, err := logger.Query(filter)
			if err != nil {
				return fmt.Errorf("query event log: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "no events recorded")
				return nil
			}

			for _, e := range events {
				line := fmt.Sprintf("%s  %-7s %-5s %-20s %s",
					e.Timestamp.Local().Format("2006-01-02 15:04:05"),
					e.Level,
					e.Channel,
					e.Kind,
					e.Message,
				)
				fmt.Fprintln(out, strings.TrimRight(line, " "))
				if verbose && e.Detail != "" {
					fmt.Fprintf(out, "%21s %s\n", "", e.Detail)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "", "filter by channel (chat or task)")
	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "filter by event kind (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of events to print")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "include event detail payloads")
	return cmd
}
