package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// parseLevel maps a configured level name to a zerolog level. Unknown names
// fall back to info.
func parseLevel(name string) zerolog.Level {
	switch name {
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

// NewLogger creates the root logger. Server debug mode overrides the
// configured level and format: it forces debug level and the human-readable
// console writer, and downstream error responses include diagnostic detail
// (see the handler package).
func NewLogger(cfg *Config) zerolog.Logger {
	level := parseLevel(cfg.Logger.Level)
	format := cfg.Logger.Format

	if cfg.Server.Debug {
		level = zerolog.DebugLevel
		format = "console"
	}

	var logger zerolog.Logger
	if format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	// The level lives on the logger itself so callers can inspect it via
	// GetLevel; sub-loggers derived with With() inherit it.
	return logger.Level(level)
}
