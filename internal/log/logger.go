// Package log constructs the service-wide zerolog logger.
package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel applies when the configured level does not parse.
const DefaultLevel = zerolog.InfoLevel

// New builds a console logger writing to stdout at the given level
// (debug, info, warn, error).
func New(level string) *zerolog.Logger {
	return NewWithOutput(level, os.Stdout)
}

// NewWithOutput builds a console logger writing to w.
func NewWithOutput(level string, w io.Writer) *zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}

	logger := zerolog.New(console).Level(parseLevel(level)).With().Timestamp().Logger()
	return &logger
}

func parseLevel(level string) zerolog.Level {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if normalized == "warning" {
		normalized = "warn"
	}
	lvl, err := zerolog.ParseLevel(normalized)
	if err != nil || lvl == zerolog.NoLevel {
		return DefaultLevel
	}
	return lvl
}
