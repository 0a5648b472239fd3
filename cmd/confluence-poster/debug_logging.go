package main

import (
	"fmt"
	"io"
	"log/slog"
)

var logger = slog.Default()

func setupLogging(w io.Writer) {
	level := slog.LevelInfo
	if Debug {
		level = slog.LevelDebug
	} else if Quiet {
		level = slog.LevelWarn
	}

	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func debugLog(format string, a ...any) {
	if Debug {
		logger.Debug(fmt.Sprintf(format, a...))
	}
}
