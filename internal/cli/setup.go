// Package cli wires configuration, collaborators and drivers together for
// the autostream command.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	autostream "github.com/servicehive/autostream"
	"github.com/servicehive/autostream/internal/config"
	"github.com/servicehive/autostream/internal/logging"
	"github.com/servicehive/autostream/pkg/adapters/gemini"
	"github.com/servicehive/autostream/pkg/adapters/knowledge"
	"github.com/servicehive/autostream/pkg/ports"
)

// NewLogger builds the process logger from config.
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	if cfg.Log.Format == "json" {
		return logging.NewJSON(level)
	}
	return logging.New(level)
}

// NewAgent builds the fully wired agent: Gemini completer and embedder,
// knowledge retriever loaded from the configured files, logger and any
// extra options from the caller. A missing API key or unloadable knowledge
// base is a startup error; degraded operation is for runtime failures only.
func NewAgent(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...autostream.Option) (*autostream.Agent, error) {
	client, err := gemini.New(ctx, cfg.Gemini.APIKey,
		gemini.WithModel(cfg.Gemini.Model),
		gemini.WithEmbedModel(cfg.Gemini.EmbedModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up gemini: %w", err)
	}

	retriever, err := knowledge.NewRetriever(client, knowledge.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to set up retriever: %w", err)
	}
	if err := retriever.LoadFiles(ctx, cfg.Knowledge.MarkdownPath, cfg.Knowledge.StructuredPath); err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}

	return NewAgentWith(retriever, client, logger, opts...)
}

// NewAgentWith builds an agent from explicit collaborators. Split out so
// tests and alternative wirings can inject fakes.
func NewAgentWith(retriever ports.Retriever, completer ports.Completer, logger *slog.Logger, opts ...autostream.Option) (*autostream.Agent, error) {
	all := append([]autostream.Option{autostream.WithLogger(logger)}, opts...)
	return autostream.New(retriever, completer, all...)
}
