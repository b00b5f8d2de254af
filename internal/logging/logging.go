// Package logging builds the zerolog loggers used by the CLI.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel keeps per-line extraction diagnostics out of normal runs.
const DefaultLevel = "warn"

// ParseLevel maps a level name (debug, info, warn, error) to a zerolog level.
// An empty name selects DefaultLevel.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultLevel
	}
	switch name {
	case "debug", "info", "warn", "error":
		return zerolog.ParseLevel(name)
	case "warning":
		return zerolog.WarnLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", name)
	}
}

// New returns a console logger writing to w at the given level.
func New(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	writer := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Str("component", "slotmap").Logger(), nil
}
