// Package log configures the process-wide zerolog logger.
package log

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init routes the global logger through a console writer and sets the
// level from the LOG_LEVEL environment variable (debug, warn, error;
// anything else means info).
func Init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
