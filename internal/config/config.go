// Package config loads application settings from a YAML file and
// AUTOSTREAM_* environment variables, with sensible defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable of the agent process.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Knowledge KnowledgeConfig `mapstructure:"knowledge"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig configures the web driver.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// RedisConfig configures the session store. When Addr is empty the server
// falls back to the in-memory store.
type RedisConfig struct {
	Addr       string        `mapstructure:"addr"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// GeminiConfig configures the Completer and Embedder backend.
type GeminiConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	EmbedModel string `mapstructure:"embed_model"`
}

// KnowledgeConfig points at the knowledge-base source files.
type KnowledgeConfig struct {
	MarkdownPath   string `mapstructure:"markdown_path"`
	StructuredPath string `mapstructure:"structured_path"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

// Load reads configuration from the given file (optional) and the
// environment. Environment variables use the AUTOSTREAM_ prefix with
// underscores, e.g. AUTOSTREAM_SERVER_ADDR. The Gemini API key also falls
// back to GOOGLE_API_KEY for parity with the hosted tooling.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.session_ttl", "30m")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.embed_model", "text-embedding-004")
	v.SetDefault("knowledge.markdown_path", "source_of_truth.md")
	v.SetDefault("knowledge.structured_path", "source_of_truth.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix("AUTOSTREAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("gemini.api_key", "AUTOSTREAM_GEMINI_API_KEY", "GOOGLE_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key env: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
