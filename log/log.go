package log

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"taskflow/internal/sentry"
)

var (
	InfoLog    *log.Logger
	WarningLog *log.Logger
	ErrorLog   *log.Logger
)

var logFile *os.File

const logFileName = "taskflow.log"

// Initialize sets up the file-backed loggers. Daemon-less tools (like the
// `events` and `health` subcommands) share the same log file so diagnostics
// end up in one place. Before Initialize is called, the loggers discard.
func Initialize() {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	} else {
		dir = filepath.Join(dir, "taskflow")
		if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
			dir = os.TempDir()
		}
	}

	path := filepath.Join(dir, logFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Printf("could not open log file %s: %v\n", path, err)
		initDiscard()
		return
	}

	logFile = f
	InfoLog = log.New(sentry.NewWriter(f, sentry.LevelInfo), "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(sentry.NewWriter(f, sentry.LevelWarning), "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(sentry.NewWriter(f, sentry.LevelError), "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// Close flushes and closes the log file.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Path returns the log file location, or "" when logging to a file failed.
func Path() string {
	if logFile == nil {
		return ""
	}
	return logFile.Name()
}

func initDiscard() {
	null, _ := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	InfoLog = log.New(null, "", 0)
	WarningLog = log.New(null, "", 0)
	ErrorLog = log.New(null, "", 0)
}

func init() {
	// Safe defaults so packages can log before Initialize runs (e.g. in tests).
	initDiscard()
}
