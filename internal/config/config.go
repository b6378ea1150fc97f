package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrMissingRequired = errors.New("missing required configuration")

// Embedding provider names accepted in EMBEDDING_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	// Corpus and vector store locations, fixed at deployment.
	DataFile       string `envconfig:"DATA_FILE" default:"data/videos.json"`
	VectorDir      string `envconfig:"VECTOR_DIR" default:"data/chroma"`
	CollectionName string `envconfig:"COLLECTION_NAME" default:"pregnancy_knowledge"`

	// Indexing
	ChunkSize    int `envconfig:"CHUNK_SIZE" default:"500"`
	ChunkOverlap int `envconfig:"CHUNK_OVERLAP" default:"50"`
	BatchSize    int `envconfig:"BATCH_SIZE" default:"1000"`

	// Retrieval
	TopK int `envconfig:"TOP_K" default:"5"`

	// Providers
	EmbeddingProvider string `envconfig:"EMBEDDING_PROVIDER" default:"openai"`
	EmbeddingModel    string `envconfig:"EMBEDDING_MODEL" default:"text-embedding-3-small"`
	GenerationModel   string `envconfig:"GENERATION_MODEL" default:"gemini-1.5-flash"`
	OpenAIAPIKey      string `envconfig:"OPENAI_API_KEY"`
	GeminiAPIKey      string `envconfig:"GEMINI_API_KEY"`

	// Extraction
	YouTubeAPIKey    string `envconfig:"YOUTUBE_API_KEY"`
	YouTubeChannelID string `envconfig:"YOUTUBE_CHANNEL_ID" default:"UC6t0ees15Lp0gyrLrAyLeJQ"`

	// Server
	ServerPort   int    `envconfig:"SERVER_PORT" default:"8081"`
	QueryLogPath string `envconfig:"QUERY_LOG_PATH" default:"data/logs/query.log"`

	// Provider resilience
	ProviderRetryAttempts     int `envconfig:"PROVIDER_RETRY_ATTEMPTS" default:"3"`
	ProviderRetryDelaySeconds int `envconfig:"PROVIDER_RETRY_DELAY_SECONDS" default:"2"`
	ProviderTimeoutSeconds    int `envconfig:"PROVIDER_TIMEOUT_SECONDS" default:"60"`
}

func Load() (*Config, error) {
	// Env vars may be set in the shell; a missing .env is fine.
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("%w: DATA_FILE", ErrMissingRequired)
	}
	if c.VectorDir == "" {
		return fmt.Errorf("%w: VECTOR_DIR", ErrMissingRequired)
	}
	if c.CollectionName == "" {
		return fmt.Errorf("%w: COLLECTION_NAME", ErrMissingRequired)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be positive, got %d", c.BatchSize)
	}
	switch c.EmbeddingProvider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown EMBEDDING_PROVIDER %q", c.EmbeddingProvider)
	}
	return nil
}

// RequireEmbedding checks the credential for the configured embedding provider.
// Needed by every command that builds or queries the index.
func (c *Config) RequireEmbedding() error {
	switch c.EmbeddingProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingRequired)
		}
	default:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingRequired)
		}
	}
	return nil
}

// RequireGeneration checks the credential for the answer model.
func (c *Config) RequireGeneration() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingRequired)
	}
	return nil
}

// RequireExtraction checks the credential for the YouTube Data API.
func (c *Config) RequireExtraction() error {
	if c.YouTubeAPIKey == "" {
		return fmt.Errorf("%w: YOUTUBE_API_KEY", ErrMissingRequired)
	}
	if c.YouTubeChannelID == "" {
		return fmt.Errorf("%w: YOUTUBE_CHANNEL_ID", ErrMissingRequired)
	}
	return nil
}
