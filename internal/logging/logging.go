// Package logging builds the application logger.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a logger with the given level and output format. Level is
// one of debug, info, warn, error; anything else means info. Format
// "console" gets the human-readable writer, anything else plain JSON.
func New(levelName, format string) zerolog.Logger {
	var level zerolog.Level
	switch levelName {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	return logger.Level(level)
}
