package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "text-embedding-004", cfg.Gemini.EmbedModel)
	assert.Equal(t, 30*time.Minute, cfg.Redis.SessionTTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  addr: ":9090"
redis:
  addr: "localhost:6379"
  session_ttl: 1h
gemini:
  model: gemini-2.5-pro
knowledge:
  markdown_path: kb/product.md
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Redis.SessionTTL)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, "kb/product.md", cfg.Knowledge.MarkdownPath)
	// Untouched keys keep their defaults.
	assert.Equal(t, "text-embedding-004", cfg.Gemini.EmbedModel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AUTOSTREAM_SERVER_ADDR", ":7070")
	t.Setenv("GOOGLE_API_KEY", "test-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
