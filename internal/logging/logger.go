// Package logging provides the application's slog constructors.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// standardize renames common keys so log pipelines see a stable schema
// (e.g. "error" -> "err").
func standardize(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}

// New creates a text logger on Stderr, keeping Stdout free for the
// conversation UI.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: standardize,
	}))
}

// NewJSON creates a JSON logger on Stderr, for server deployments.
func NewJSON(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: standardize,
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
