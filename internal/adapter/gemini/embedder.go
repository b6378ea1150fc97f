// Package gemini wraps the Google generative AI SDK behind the small
// interfaces the pipelines consume: an embedding function and an answer
// generator.
package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultEmbeddingModel = "gemini-embedding-001"

type Embedder struct {
	client *genai.Client
	model  string
	retry  Retry
}

func NewEmbedder(ctx context.Context, apiKey string, retry Retry) (*Embedder, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Embedder{client: client, model: defaultEmbeddingModel, retry: retry}, nil
}

func (e *Embedder) Model() string {
	return e.model
}

// Embed maps text to a fixed-dimension vector. The signature matches
// chromem.EmbeddingFunc, so the method value plugs straight into the store.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	slog.DebugContext(ctx, "embedding content", "model", e.model, "length", len(text))

	var values []float32
	err := e.retry.do(ctx, func(ctx context.Context) error {
		em := e.client.EmbeddingModel(e.model)
		res, err := em.EmbedContent(ctx, genai.Text(text))
		if err != nil {
			slog.WarnContext(ctx, "embedding attempt failed", "model", e.model, "error", err)
			return err
		}
		if res.Embedding == nil || len(res.Embedding.Values) == 0 {
			return fmt.Errorf("empty embedding received")
		}
		values = res.Embedding.Values
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "embedding failed", "model", e.model, "error", err)
		return nil, err
	}
	return values, nil
}

func (e *Embedder) Close() error {
	return e.client.Close()
}
