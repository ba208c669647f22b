package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const (
	logDir          = "logs"
	logFileName     = "hockey.log"
	metricsFileName = "hockey-metrics.json"
)

// setupLogging returns the session logger. The terminal belongs to the game,
// so with debug off everything is discarded; with debug on JSON lines go to
// logs/hockey.log. The returned file is nil unless one was opened.
func setupLogging(debug bool) (zerolog.Logger, *os.File) {
	if !debug {
		return zerolog.New(io.Discard).Level(zerolog.Disabled), nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		return zerolog.New(io.Discard).Level(zerolog.Disabled), nil
	}

	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return zerolog.New(io.Discard).Level(zerolog.Disabled), nil
	}

	logger := zerolog.New(f).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	return logger, f
}

// openMetricsFile truncates logs/hockey-metrics.json for the session's otel export
func openMetricsFile() (*os.File, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.Create(filepath.Join(logDir, metricsFileName))
	if err != nil {
		return nil, fmt.Errorf("open metrics file: %w", err)
	}
	return f, nil
}
