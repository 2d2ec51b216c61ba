package main

import (
	"log/slog"
	"os"
)

var (
	logLevel = &slog.LevelVar{}
	theLog   = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
)

func init() {
	if v := os.Getenv("ASSEMYAML_LOG_LEVEL"); v != "" {
		if err := logLevel.UnmarshalText([]byte(v)); err != nil {
			theLog.Warn("ignoring log level", "value", v, "error", err)
		}
	}
}
