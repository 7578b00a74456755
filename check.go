package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"taskflow/config"
	"taskflow/internal/api"
)

// errUnhealthy is returned when any probe fails to signal exit code 1 without printing a message.
var errUnhealthy = errors.New("unhealthy")

const probeTimeout = 5 * time.Second

type probeResult struct {
	name   string
	ok     bool
	detail string
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Audit server connectivity",
		Long: `Probes everything the client needs to operate:

  1. Config     (config directory is usable)
  2. REST API   (health endpoint responds)
  3. Chat sync  (chat channel accepts a connection)
  4. Task sync  (task channel accepts a connection)

Exit code 0 if all probes pass, exit code 1 otherwise.`,
		RunE: runCheck,
		// Suppress usage on error — probe failures are not usage errors.
		SilenceUsage: true,
		// Suppress cobra's "Error: ..." line for the unhealthy sentinel.
		SilenceErrors: true,
	}
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 4*probeTimeout)
	defer cancel()

	cfg := config.LoadConfig()
	if apiURLFlag != "" {
		cfg.APIBaseURL = apiURLFlag
	}
	if wsURLFlag != "" {
		cfg.WSBaseURL = wsURLFlag
	}

	results := []probeResult{
		probeConfig(),
		probeREST(ctx, cfg),
		probeSocket(ctx, "chat sync", cfg.ChatSocketURL()),
		probeSocket(ctx, "task sync", cfg.TaskSocketURL()),
	}

	out := cmd.OutOrStdout()
	ok := 0
	for _, r := range results {
		glyph := "✓"
		if r.ok {
			ok++
		} else {
			glyph = "✗"
		}
		fmt.Fprintf(out, "  %s %-12s %s\n", glyph, r.name, r.detail)
	}

	pct := ok * 100 / len(results)
	fmt.Fprintf(out, "\nHealth: %d/%d OK (%d%%)\n", ok, len(results), pct)

	if pct < 100 {
		return errUnhealthy
	}
	return nil
}

func probeConfig() probeResult {
	r := probeResult{name: "config"}
	dir, err := config.GetConfigDir()
	if err != nil {
		r.detail = err.Error()
		return r
	}
	// Verify the directory accepts writes, not just that it exists.
	f, err := os.CreateTemp(dir, ".check-*")
	if err != nil {
		r.detail = fmt.Sprintf("%s not writable: %v", dir, err)
		return r
	}
	f.Close()
	os.Remove(f.Name())

	r.ok = true
	r.detail = filepath.Join(dir, config.ConfigFileName)
	return r
}

func probeREST(ctx context.Context, cfg *config.Config) probeResult {
	r := probeResult{name: "rest api", detail: cfg.APIBaseURL}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := api.NewClient(cfg.APIBaseURL).HealthCheck(ctx); err != nil {
		r.detail = err.Error()
		return r
	}
	r.ok = true
	return r
}

func probeSocket(ctx context.Context, name, url string) probeResult {
	r := probeResult{name: name, detail: url}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	dialer := &websocket.Dialer{HandshakeTimeout: probeTimeout}
	c, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		r.detail = err.Error()
		return r
	}
	c.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.Close()

	r.ok = true
	return r
}
