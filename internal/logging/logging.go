// Package logging sets up the go-logging logger used by the command line
// tool and the examples.
package logging

import (
	"fmt"
	"io"
	"strings"

	gol "github.com/op/go-logging"
)

// Module is the go-logging module name every logger is registered under.
const Module = "sixtyfour"

// Format prints the time, the level and the message.
const Format = `%{time:15:04:05.000} %{level:.4s} %{message}`

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warning"

// New returns a logger writing messages of the given level (or above) to w.
func New(w io.Writer, level string) (*gol.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}

	lvl, err := gol.LogLevel(strings.ToUpper(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	backend := gol.NewBackendFormatter(
		gol.NewLogBackend(w, "", 0),
		gol.MustStringFormatter(Format),
	)

	leveled := gol.AddModuleLevel(backend)
	leveled.SetLevel(lvl, Module)

	logger := gol.MustGetLogger(Module)
	logger.SetBackend(leveled)
	return logger, nil
}
