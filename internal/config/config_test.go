package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/videos.json", cfg.DataFile)
	assert.Equal(t, "pregnancy_knowledge", cfg.CollectionName)
	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, 50, cfg.ChunkOverlap)
	assert.Equal(t, 1000, cfg.BatchSize)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, ProviderOpenAI, cfg.EmbeddingProvider)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
}

func TestValidate(t *testing.T) {
	t.Run("Unknown Provider", func(t *testing.T) {
		t.Setenv("EMBEDDING_PROVIDER", "cohere")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EMBEDDING_PROVIDER")
	})

	t.Run("Bad Chunk Size", func(t *testing.T) {
		t.Setenv("CHUNK_SIZE", "0")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CHUNK_SIZE")
	})
}

func TestRequireCredentials(t *testing.T) {
	t.Run("Embedding OpenAI", func(t *testing.T) {
		cfg := &Config{EmbeddingProvider: ProviderOpenAI}
		assert.ErrorIs(t, cfg.RequireEmbedding(), ErrMissingRequired)

		cfg.OpenAIAPIKey = "sk-test"
		assert.NoError(t, cfg.RequireEmbedding())
	})

	t.Run("Embedding Gemini", func(t *testing.T) {
		cfg := &Config{EmbeddingProvider: ProviderGemini, OpenAIAPIKey: "sk-test"}
		assert.ErrorIs(t, cfg.RequireEmbedding(), ErrMissingRequired)

		cfg.GeminiAPIKey = "g-test"
		assert.NoError(t, cfg.RequireEmbedding())
	})

	t.Run("Generation", func(t *testing.T) {
		cfg := &Config{}
		assert.ErrorIs(t, cfg.RequireGeneration(), ErrMissingRequired)

		cfg.GeminiAPIKey = "g-test"
		assert.NoError(t, cfg.RequireGeneration())
	})

	t.Run("Extraction", func(t *testing.T) {
		cfg := &Config{YouTubeChannelID: "UC123"}
		assert.ErrorIs(t, cfg.RequireExtraction(), ErrMissingRequired)

		cfg.YouTubeAPIKey = "yt-test"
		assert.NoError(t, cfg.RequireExtraction())
	})
}
