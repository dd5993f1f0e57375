package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. "console" format writes
// human-readable lines; anything else writes JSON.
func Setup(level, format, service string) zerolog.Logger {
	return SetupWithWriter(os.Stderr, level, format, service)
}

// SetupWithWriter is Setup with an explicit destination
func SetupWithWriter(w io.Writer, level, format, service string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)

	out := w
	if strings.EqualFold(format, "console") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Str("service", service).Logger()
	return log.Logger
}
