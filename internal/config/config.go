// Package config loads askdoc configuration from a TOML file with
// environment variable overrides. A .env file in the working directory
// is honoured for the variables an API-backed setup needs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// Defaults applied when neither file nor environment provides a value.
const (
	DefaultChunkSize    = 750
	DefaultChunkOverlap = 100
	DefaultTopK         = 5
	DefaultProvider     = "gemini"
)

// Config holds all runtime settings.
type Config struct {
	// ChunkSize is the token budget per chunk.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the token budget carried between adjacent chunks.
	ChunkOverlap int `toml:"chunk_overlap"`

	// TopK is the number of chunks retrieved per question.
	TopK int `toml:"top_k"`

	// Provider selects the embedding and generation backend
	// ("gemini" or "openai").
	Provider string `toml:"provider"`

	// EmbeddingModel overrides the provider's default embedding model.
	EmbeddingModel string `toml:"embedding_model"`

	// GenerationModel overrides the provider's default generation model.
	GenerationModel string `toml:"generation_model"`

	// MongoURI is the MongoDB connection string.
	MongoURI string `toml:"mongo_uri"`

	// Database is the MongoDB database name.
	Database string `toml:"database"`

	// GeminiAPIKey authenticates against the Gemini API.
	GeminiAPIKey string `toml:"-"`

	// OpenAIAPIKey authenticates against the OpenAI API.
	OpenAIAPIKey string `toml:"-"`
}

// Load reads configuration in precedence order: defaults, then the
// TOML file at path (or ~/.askdoc/config.toml when path is empty), then
// environment variables. A missing config file is not an error.
func Load(path string) (*Config, error) {
	// Best effort; a missing .env file is normal.
	_ = godotenv.Load()

	cfg := &Config{
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		TopK:         DefaultTopK,
		Provider:     DefaultProvider,
	}

	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".askdoc", "config.toml")
		}
	}
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile merges TOML settings from path into cfg. Missing files are
// skipped.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug("Config file %s not found, using defaults", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	logger.Debug("Loaded config from %s", path)

	return nil
}

// applyEnv overrides cfg with environment variables when set.
func applyEnv(cfg *Config) {
	if v := os.Getenv("MONGODB_URI"); v != "" {
		cfg.MongoURI = v
	}
	if v := os.Getenv("ASKDOC_DATABASE"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("ASKDOC_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIAPIKey = v
	}
	if v := os.Getenv("ASKDOC_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ChunkSize = n
		}
	}
	if v := os.Getenv("ASKDOC_CHUNK_OVERLAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ChunkOverlap = n
		}
	}
	if v := os.Getenv("ASKDOC_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TopK = n
		}
	}
}

// Validate checks that the settings are internally consistent.
func (c *Config) Validate() error {
	if c.ChunkSize < 1 {
		return fmt.Errorf("config: %w: chunk_size must be at least 1, got %d",
			domain.ErrInvalidConfig, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("config: %w: chunk_overlap must not be negative, got %d",
			domain.ErrInvalidConfig, c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("config: %w: chunk_overlap (%d) must be smaller than chunk_size (%d)",
			domain.ErrInvalidConfig, c.ChunkOverlap, c.ChunkSize)
	}
	if c.TopK < 1 {
		return fmt.Errorf("config: %w: top_k must be at least 1, got %d",
			domain.ErrInvalidConfig, c.TopK)
	}
	switch c.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("config: %w: unknown provider %q", domain.ErrInvalidConfig, c.Provider)
	}

	return nil
}
