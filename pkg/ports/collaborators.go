package ports

import "context"

// Retriever performs semantic search over the product knowledge base.
type Retriever interface {
	// Retrieve returns up to k text chunks ranked by relevance, most
	// relevant first. An empty knowledge base yields an empty slice, not
	// an error; callers must degrade gracefully.
	Retrieve(ctx context.Context, query string, k int) ([]string, error)
}

// Completer is the single-shot text completion collaborator used for intent
// classification, answer validation and RAG answer synthesis.
type Completer interface {
	// Classify runs a categorization prompt and returns the raw label text.
	Classify(ctx context.Context, prompt string) (string, error)

	// Generate runs a synthesis prompt and returns the generated answer.
	Generate(ctx context.Context, prompt string) (string, error)
}
