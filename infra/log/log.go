package log

import (
	"os"

	"github.com/rs/zerolog"
)

type Logger = zerolog.Logger

// New builds the process logger. Diagnostics go to stderr so the report on
// stdout stays machine-readable.
func New(level string, pretty bool) Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var out = zerolog.New(os.Stderr)
	if pretty {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return out.Level(lvl).With().Timestamp().Logger()
}
