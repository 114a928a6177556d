// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel keeps the CLI quiet unless something is wrong.
const DefaultLevel = "warn"

// Levels lists the accepted level names.
var Levels = []string{"debug", "info", "warn", "error"}

// ParseLevel converts a level name into a zerolog.Level.
func ParseLevel(s string) (zerolog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		name = DefaultLevel
	}
	for _, l := range Levels {
		if l == name {
			return zerolog.ParseLevel(name)
		}
	}
	return zerolog.NoLevel, fmt.Errorf("invalid log level %q: must be one of %s", s, strings.Join(Levels, ", "))
}

// New builds a logger writing to w. Console output is human readable; JSON
// output emits one object per line.
func New(level string, w io.Writer, json bool) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := w
	if !json {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: os.Getenv("NO_COLOR") != ""}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// Setup builds a logger on stderr and installs it as the global logger used
// through github.com/rs/zerolog/log.
func Setup(level string, json bool) error {
	logger, err := New(level, os.Stderr, json)
	if err != nil {
		return err
	}
	log.Logger = logger
	return nil
}
