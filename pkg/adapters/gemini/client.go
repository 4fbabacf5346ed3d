// Package gemini backs the Completer and Embedder collaborators with the
// Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/servicehive/autostream/pkg/adapters/knowledge"
	"github.com/servicehive/autostream/pkg/ports"
)

const (
	defaultModel      = "gemini-2.0-flash"
	defaultEmbedModel = "text-embedding-004"
)

// Client implements ports.Completer and knowledge.Embedder over the Gemini
// API.
type Client struct {
	client     *genai.Client
	model      string
	embedModel string
}

var (
	_ ports.Completer    = (*Client)(nil)
	_ knowledge.Embedder = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithModel sets the generation model.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithEmbedModel sets the embedding model.
func WithEmbedModel(model string) Option {
	return func(c *Client) {
		c.embedModel = model
	}
}

// New creates a Gemini-backed client.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	c := &Client{
		client:     gc,
		model:      defaultModel,
		embedModel: defaultEmbedModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Classify runs a categorization prompt. Classification must be
// deterministic, so it shares the temperature-zero completion path.
func (c *Client) Classify(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, prompt)
}

// Generate runs a synthesis prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, prompt)
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	temp := float32(0)
	cfg := &genai.GenerateContentConfig{
		Temperature: &temp,
	}

	res, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := strings.TrimSpace(res.Text())
	if text == "" {
		return "", errors.New("gemini returned empty text")
	}
	return text, nil
}

// Embed returns one embedding vector per input text.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	res, err := c.client.Models.EmbedContent(ctx, c.embedModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini embed content: %w", err)
	}
	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini returned %d embeddings for %d texts", len(res.Embeddings), len(texts))
	}

	vecs := make([][]float64, len(res.Embeddings))
	for i, emb := range res.Embeddings {
		vec := make([]float64, len(emb.Values))
		for j, v := range emb.Values {
			vec[j] = float64(v)
		}
		vecs[i] = vec
	}
	return vecs, nil
}
