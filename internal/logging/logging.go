// Package logging sets up the zerolog logger. The TUI owns the terminal, so
// logs only ever go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a level name to a zerolog level. Unknown names map to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New returns a logger writing uncoloured console-format lines to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}).Level(level).With().Timestamp().Logger()
}

// OpenFile opens path for appending and returns a logger writing to it.
// An empty path yields a disabled logger.
func OpenFile(path, level string) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := New(file, ParseLevel(level))
	logger.Info().Str("loglevel", logger.GetLevel().String()).Msg("logging set up")
	return logger, file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
