package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level     string    // debug, info, warn, error
	Pretty    bool      // human readable console output
	Redaction bool      // redact credentials before writing
	Output    io.Writer // defaults to os.Stderr
}

// New creates a zerolog logger.
// Output defaults to stderr: on the stdio transport stdout carries the protocol.
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var writer io.Writer = os.Stderr
	if cfg.Output != nil {
		writer = cfg.Output
	}

	if cfg.Redaction {
		writer = NewRedactor().Wrap(writer)
	}

	if cfg.Pretty {
		writer = zerolog.ConsoleWriter{
			Out:        writer,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}
