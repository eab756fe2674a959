package main

import (
	"io"
	"log/slog"
	"strings"
)

// newLogger builds a slog.Logger from the CAIRN_LOG filter string. The
// default level is warn so normal runs stay quiet.
func newLogger(filter string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(strings.TrimSpace(filter)) {
	case "trace", "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "", "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func initLogging(filter string, w io.Writer) {
	slog.SetDefault(newLogger(filter, w))
}
