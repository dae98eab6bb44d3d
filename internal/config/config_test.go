package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// clearEnv blanks every variable the loader reads so ambient values
// cannot leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MONGODB_URI", "ASKDOC_DATABASE", "ASKDOC_PROVIDER",
		"GEMINI_API_KEY", "OPENAI_API_KEY",
		"ASKDOC_CHUNK_SIZE", "ASKDOC_CHUNK_OVERLAP", "ASKDOC_TOP_K",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultChunkSize, cfg.ChunkSize)
	assert.Equal(t, DefaultChunkOverlap, cfg.ChunkOverlap)
	assert.Equal(t, DefaultTopK, cfg.TopK)
	assert.Equal(t, DefaultProvider, cfg.Provider)
}

func TestLoad_FromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
chunk_size = 500
chunk_overlap = 50
top_k = 3
provider = "openai"
generation_model = "gpt-4o"
mongo_uri = "mongodb://localhost:27017"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, 50, cfg.ChunkOverlap)
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o", cfg.GenerationModel)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
mongo_uri = "mongodb://file:27017"
chunk_size = 400
`)
	t.Setenv("MONGODB_URI", "mongodb://env:27017")
	t.Setenv("ASKDOC_CHUNK_SIZE", "600")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://env:27017", cfg.MongoURI)
	assert.Equal(t, 600, cfg.ChunkSize)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "chunk_size = [not toml")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ChunkSize:    750,
			ChunkOverlap: 100,
			TopK:         5,
			Provider:     "gemini",
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("zero chunk size", func(t *testing.T) {
		cfg := valid()
		cfg.ChunkSize = 0
		assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidConfig)
	})

	t.Run("negative overlap", func(t *testing.T) {
		cfg := valid()
		cfg.ChunkOverlap = -1
		assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidConfig)
	})

	t.Run("overlap at chunk size", func(t *testing.T) {
		cfg := valid()
		cfg.ChunkOverlap = cfg.ChunkSize
		assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidConfig)
	})

	t.Run("zero top k", func(t *testing.T) {
		cfg := valid()
		cfg.TopK = 0
		assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidConfig)
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := valid()
		cfg.Provider = "cohere"
		assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidConfig)
	})
}
