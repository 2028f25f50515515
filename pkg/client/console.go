package client

import (
	"log/slog"
	"strings"
)

// NewLogger returns a text logger writing one console line per record.
// Records at error level go to console.error.
func NewLogger(console Console, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(consoleWriter{console}, &slog.HandlerOptions{Level: level}))
}

type consoleWriter struct {
	console Console
}

func (w consoleWriter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	if strings.Contains(line, "level=ERROR") {
		w.console.Error(line)
	} else {
		w.console.Log(line)
	}
	return len(p), nil
}
