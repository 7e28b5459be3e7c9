// Package logging configures the process-wide structured logger. The TUI owns
// the terminal, so output goes to a file or nowhere.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Setup points the default charmbracelet logger at path and returns a close
// function. If the file cannot be opened logging is discarded.
func Setup(path, level string) func() error {
	logger := log.NewWithOptions(io.Discard, log.Options{
		ReportTimestamp: true,
		Prefix:          "ursa",
	})
	logger.SetLevel(ParseLevel(level))
	log.SetDefault(logger)

	if path == "" {
		return func() error { return nil }
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return func() error { return nil }
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return func() error { return nil }
	}
	logger.SetOutput(f)
	return f.Close
}

// ParseLevel maps a config level name to a log.Level, defaulting to info.
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
