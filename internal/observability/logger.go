// Package observability configures the process-wide zerolog logger.
package observability

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const serviceName = "sheetcal"

// InitLogger initializes the global zerolog logger. format "console"
// writes human-readable lines; any other value writes JSON. Logs go to
// stderr so command output on stdout stays machine-readable.
func InitLogger(level, format string) error {
	return initLogger(os.Stderr, level, format)
}

func initLogger(w io.Writer, level, format string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("parsing log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if strings.EqualFold(strings.TrimSpace(format), "console") {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}).With().
			Timestamp().
			Str("service", serviceName).
			Logger()
		return nil
	}

	log.Logger = zerolog.New(w).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
	return nil
}

// GetLogger returns the global logger
func GetLogger() *zerolog.Logger {
	return &log.Logger
}
