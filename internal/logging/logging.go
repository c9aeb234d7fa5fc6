// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup sets the global level and output. format is "json" for machine-readable lines,
// anything else writes human-readable console output.
func Setup(debug bool, format string) {
	SetupWriter(os.Stderr, debug, format)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, debug bool, format string) {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	out := w
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}
