package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// zerologLevel maps the configured level name to a zerolog level. Unknown
// names fall back to info; Validate rejects them before this runs.
func (c LoggerConfig) zerologLevel() zerolog.Level {
	switch c.Level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger builds the root logger for the process. The level is set on the
// logger itself so tests and libraries keep their own levels.
func NewLogger(cfg LoggerConfig) zerolog.Logger {
	var out io.Writer = os.Stdout
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).
		Level(cfg.zerologLevel()).
		With().Timestamp().Logger()
}
