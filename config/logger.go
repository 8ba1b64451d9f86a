package config

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the process logger. GO_ENV=production selects the JSON
// handler, anything else the text handler. LOG_LEVEL accepts debug, info,
// warn or error; unset or unknown values fall back to info.
func NewLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(os.Getenv("LOG_LEVEL")))); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if os.Getenv("GO_ENV") == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
