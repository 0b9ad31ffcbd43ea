// Package logging configures structured JSON logging via log/slog. Every
// log line carries the service name; request-scoped fields are attached by
// the HTTP middleware per call.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup builds the service-wide slog.Logger and installs it as the
// default. sink, when non-nil, additionally receives every log line (the
// caller wires gopkg.in/natefinch/lumberjack.v2 here for rotation).
func Setup(service string, level string, sink io.Writer) *slog.Logger {
	var out io.Writer = os.Stdout
	if sink != nil {
		out = io.MultiWriter(os.Stdout, sink)
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey {
				return slog.Attr{Key: "timestamp", Value: attr.Value}
			}
			if attr.Key == slog.LevelKey {
				return slog.String("severity", strings.ToUpper(attr.Value.String()))
			}
			if attr.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: attr.Value}
			}
			return attr
		},
	})

	base := slog.New(handler).With(slog.String("service", strings.TrimSpace(service)))
	slog.SetDefault(base)
	return base
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
