package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// LogLevelEnvVar names the environment variable holding the log level.
const LogLevelEnvVar = "INVADERS_LOG_LEVEL"

// NewLogger builds the process logger writing to w. The level comes from
// INVADERS_LOG_LEVEL and defaults to info; an unknown level falls back to
// info and is reported through the returned logger.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           log.InfoLevel,
	})

	raw := GetEnv(LogLevelEnvVar, "")
	if raw == "" {
		return logger
	}
	level, err := log.ParseLevel(raw)
	if err != nil {
		logger.Warn("ignoring log level", "value", raw, "err", err)
		return logger
	}
	logger.SetLevel(level)
	return logger
}
