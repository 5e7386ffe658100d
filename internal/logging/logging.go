package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger for console output on stderr. Verbose
// lowers the level to debug.
func Init(verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
		NoColor:    false,
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// NewLogger returns a logger writing to the given writers. With no writers
// it returns the global logger set up by Init.
func NewLogger(writers ...io.Writer) zerolog.Logger {
	if len(writers) == 0 {
		return log.Logger
	}
	return zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
}

// WithComponent derives a logger tagged with a component field from the
// global logger.
func WithComponent(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}
