package logging

import (
	"log/slog"
	"os"
)

type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger() *SlogLogger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &SlogLogger{l: slog.New(h)}
}

func (s *SlogLogger) Info(msg string, fields map[string]any) {
	s.l.Info(msg, args(fields)...)
}

func (s *SlogLogger) Error(msg string, fields map[string]any) {
	s.l.Error(msg, args(fields)...)
}

func args(fields map[string]any) []any {
	out := make([]any, 0, len(fields))
	for k, v := range fields {
		out = append(out, slog.Any(k, v))
	}
	return out
}
