package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the root logger for a process. Dev gets human-readable console
// output, everything else structured JSON.
func New(env, service string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var logger zerolog.Logger
	if env == "dev" {
		out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		logger = zerolog.New(out)
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.With().
		Timestamp().
		Str("service", service).
		Logger()
}
