// Package embedding selects the embedding provider from configuration. Build
// and query must go through the same function; the store manifest enforces
// the model match at query time.
package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/philippgille/chromem-go"

	"pibo/internal/adapter/gemini"
	"pibo/internal/config"
)

// Func returns the embedding function for the configured provider together
// with the model name recorded in the store manifest.
func Func(ctx context.Context, cfg *config.Config) (chromem.EmbeddingFunc, string, error) {
	if err := cfg.RequireEmbedding(); err != nil {
		return nil, "", err
	}

	switch cfg.EmbeddingProvider {
	case config.ProviderOpenAI:
		fn := chromem.NewEmbeddingFuncOpenAI(cfg.OpenAIAPIKey, chromem.EmbeddingModelOpenAI(cfg.EmbeddingModel))
		return fn, cfg.EmbeddingModel, nil

	case config.ProviderGemini:
		emb, err := gemini.NewEmbedder(ctx, cfg.GeminiAPIKey, gemini.Retry{
			Attempts: cfg.ProviderRetryAttempts,
			Delay:    time.Duration(cfg.ProviderRetryDelaySeconds) * time.Second,
			Timeout:  time.Duration(cfg.ProviderTimeoutSeconds) * time.Second,
		})
		if err != nil {
			return nil, "", err
		}
		return emb.Embed, emb.Model(), nil

	default:
		return nil, "", fmt.Errorf("unknown embedding provider %q", cfg.EmbeddingProvider)
	}
}
