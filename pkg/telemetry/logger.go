package telemetry

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger creates a zerolog logger from a logging configuration.
func NewLogger(cfg LoggingConfig) zerolog.Logger {
	// Configure output writer
	var writer io.Writer
	switch cfg.Output {
	case "stdout":
		writer = os.Stdout
	default:
		writer = os.Stderr
	}

	// Configure format
	if cfg.Format == "console" {
		writer = zerolog.ConsoleWriter{Out: writer}
	}

	zlog := zerolog.New(writer).With().Timestamp().Logger()
	return zlog.Level(parseLogLevel(cfg.Level))
}

// parseLogLevel converts a level string to a zerolog level, defaulting to
// info for unknown values.
func parseLogLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
