package logger

import (
	"os"
	"time"

	"github.com/charleseiq/eiq-manager-tools/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns the process logger. Console output in dev keeps batch progress
// legible; JSON elsewhere. Diagnostics go to stderr so report paths printed
// on stdout stay pipeable.
func New(cfg config.Config) zerolog.Logger {
	if cfg.AppEnv == "dev" {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		logger := zerolog.New(output).With().Timestamp().Logger()
		log.Logger = logger
		return logger
	}
	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
