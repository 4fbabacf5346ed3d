// Package knowledge implements semantic retrieval over the product
// knowledge base: markdown and structured documents are chunked, embedded
// and held in an in-memory vector index.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/servicehive/autostream/internal/logging"
	"github.com/servicehive/autostream/pkg/ports"
)

// Embedder turns texts into embedding vectors. Implementations must return
// one vector per input text, in order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Retriever implements ports.Retriever over an embedded chunk index.
type Retriever struct {
	embedder Embedder
	index    *Index
	logger   *slog.Logger
}

var _ ports.Retriever = (*Retriever)(nil)

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) RetrieverOption {
	return func(r *Retriever) {
		r.logger = logger
	}
}

// NewRetriever creates a retriever backed by the given embedder. The index
// starts empty; call LoadFiles or AddChunks to populate it.
func NewRetriever(embedder Embedder, opts ...RetrieverOption) (*Retriever, error) {
	if embedder == nil {
		return nil, errors.New("embedder is required")
	}
	r := &Retriever{
		embedder: embedder,
		index:    NewIndex(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// LoadFiles reads, chunks, embeds and indexes the knowledge base files.
// A missing file is logged and skipped so the agent can still run with a
// partial or empty knowledge base. Either path may be empty.
func (r *Retriever) LoadFiles(ctx context.Context, markdownPath, structuredPath string) error {
	var chunks []string

	if markdownPath != "" {
		data, err := os.ReadFile(markdownPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			r.logger.Warn("markdown knowledge file not found", "path", markdownPath)
		case err != nil:
			return fmt.Errorf("failed to read %s: %w", markdownPath, err)
		default:
			chunks = append(chunks, ChunkMarkdown(string(data))...)
		}
	}

	if structuredPath != "" {
		data, err := os.ReadFile(structuredPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			r.logger.Warn("structured knowledge file not found", "path", structuredPath)
		case err != nil:
			return fmt.Errorf("failed to read %s: %w", structuredPath, err)
		default:
			structured, err := ChunkStructured(data)
			if err != nil {
				return fmt.Errorf("failed to chunk %s: %w", structuredPath, err)
			}
			chunks = append(chunks, structured...)
		}
	}

	return r.AddChunks(ctx, chunks)
}

// AddChunks embeds the given chunks and adds them to the index.
func (r *Retriever) AddChunks(ctx context.Context, chunks []string) error {
	if len(chunks) == 0 {
		r.logger.Warn("knowledge base is empty")
		return nil
	}

	vecs, err := r.embedder.Embed(ctx, chunks)
	if err != nil {
		return fmt.Errorf("failed to embed knowledge chunks: %w", err)
	}
	if len(vecs) != len(chunks) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vecs), len(chunks))
	}

	for i, chunk := range chunks {
		r.index.Add(chunk, vecs[i])
	}
	r.logger.Info("knowledge base loaded", "chunks", len(chunks))
	return nil
}

// Retrieve embeds the query and returns the top k chunks. An empty index
// yields an empty result without calling the embedder.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	if r.index.Len() == 0 {
		return nil, nil
	}

	vecs, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one query", len(vecs))
	}

	return r.index.Search(vecs[0], k), nil
}
