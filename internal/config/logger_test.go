package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_UsesConfiguredLevel(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Debug: false},
		Logger: LoggerConfig{Level: "warn", Format: "json"},
	}

	logger := NewLogger(cfg)

	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestNewLogger_DebugModeForcesDebugLevel(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Debug: true},
		Logger: LoggerConfig{Level: "error", Format: "json"},
	}

	logger := NewLogger(cfg)

	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	cfg := &Config{
		Logger: LoggerConfig{Level: "loud", Format: "json"},
	}

	logger := NewLogger(cfg)

	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNewLogger_SubLoggersInheritLevel(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Debug: true},
		Logger: LoggerConfig{Level: "info", Format: "json"},
	}

	sub := NewLogger(cfg).With().Str("service", "order").Logger()

	assert.Equal(t, zerolog.DebugLevel, sub.GetLevel())
}
