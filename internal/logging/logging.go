// Package logging configures the global zerolog logger.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the zerolog logger. Development gets pretty console output;
// an unknown level falls back to info.
func Setup(appEnv, logLevel string) zerolog.Level {
	// Pretty console logging in development
	if appEnv == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	// Set log level
	level := zerolog.InfoLevel
	if logLevel != "" {
		parsedLevel, err := zerolog.ParseLevel(logLevel)
		if err == nil && parsedLevel != zerolog.NoLevel {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("level", level.String()).
		Msg("Logger initialized")

	return level
}

// SetupFromEnv configures the logger before configuration is loaded
func SetupFromEnv() zerolog.Level {
	return Setup(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
}
