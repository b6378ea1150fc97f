package index

import (
	"context"
	"fmt"
	"log/slog"

	"pibo/internal/corpus"
	"pibo/internal/vector"
)

type Builder struct {
	store     vector.Store
	assembler Assembler
	batchSize int
}

type BuildStats struct {
	Videos    int
	Documents int
	Batches   int
}

func NewBuilder(store vector.Store, assembler Assembler, batchSize int) *Builder {
	return &Builder{store: store, assembler: assembler, batchSize: batchSize}
}

// Build replaces the collection with a fresh index of the given corpus.
// Documents for the whole corpus are assembled up front, then upserted in
// sequential batches; the first failed batch aborts the build.
func (b *Builder) Build(ctx context.Context, videos []corpus.Video) (BuildStats, error) {
	stats := BuildStats{Videos: len(videos)}

	if err := b.store.EnsureAbsent(ctx); err != nil {
		return stats, fmt.Errorf("reset collection: %w", err)
	}
	if err := b.store.Create(ctx); err != nil {
		return stats, err
	}

	var docs []vector.Document
	for i, v := range videos {
		docs = append(docs, b.assembler.Documents(v)...)
		if (i+1)%10 == 0 {
			slog.InfoContext(ctx, "assembling documents", "videos_processed", i+1, "videos_total", len(videos))
		}
	}
	stats.Documents = len(docs)

	slog.InfoContext(ctx, "upserting documents", "documents", len(docs), "batch_size", b.batchSize)

	for start := 0; start < len(docs); start += b.batchSize {
		end := start + b.batchSize
		if end > len(docs) {
			end = len(docs)
		}
		if err := b.store.Add(ctx, docs[start:end]); err != nil {
			return stats, fmt.Errorf("upsert batch %d..%d: %w", start, end, err)
		}
		stats.Batches++
		slog.InfoContext(ctx, "batch upserted", "from", start, "to", end)
	}

	return stats, nil
}
