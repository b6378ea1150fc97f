package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chromemstore "pibo/internal/adapter/chromem"
	"pibo/internal/adapter/gemini"
	"pibo/internal/app"
	"pibo/internal/config"
	"pibo/internal/corpus"
	"pibo/internal/embedding"
	"pibo/internal/extract"
	"pibo/internal/index"
	"pibo/internal/logger"
	"pibo/internal/retrieval"
)

const usage = `usage: pibo <command>

commands:
  extract   fetch channel videos from the YouTube Data API into the corpus file
  build     rebuild the vector collection from the corpus file
  serve     start the HTTP API (ask, videos, stats)
  inspect   print collection count and a document sample
`

func main() {
	handler := logger.NewContextHandler(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(slog.New(handler))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd := os.Args[1]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "extract":
		err = runExtract(ctx, cfg)
	case "build":
		err = runBuild(ctx, cfg)
	case "serve":
		err = runServe(ctx, cfg)
	case "inspect":
		err = runInspect(ctx, cfg)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		slog.Error("command failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

func newStore(ctx context.Context, cfg *config.Config) (*chromemstore.Store, error) {
	embedFn, model, err := embedding.Func(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return chromemstore.NewStore(cfg.VectorDir, cfg.CollectionName, embedFn, model)
}

func providerRetry(cfg *config.Config) gemini.Retry {
	return gemini.Retry{
		Attempts: cfg.ProviderRetryAttempts,
		Delay:    time.Duration(cfg.ProviderRetryDelaySeconds) * time.Second,
		Timeout:  time.Duration(cfg.ProviderTimeoutSeconds) * time.Second,
	}
}

func runExtract(ctx context.Context, cfg *config.Config) error {
	if err := cfg.RequireExtraction(); err != nil {
		return err
	}

	client, err := extract.NewClient(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "extracting channel uploads", "channel_id", cfg.YouTubeChannelID)
	videos, err := client.ChannelVideos(ctx, cfg.YouTubeChannelID)
	if err != nil {
		return err
	}

	if err := corpus.Save(cfg.DataFile, videos); err != nil {
		return err
	}
	slog.InfoContext(ctx, "corpus written", "path", cfg.DataFile, "videos", len(videos))
	return nil
}

func runBuild(ctx context.Context, cfg *config.Config) error {
	videos, err := corpus.Load(cfg.DataFile)
	if errors.Is(err, corpus.ErrCorpusNotFound) {
		// Not a crash: there is simply nothing to index yet.
		slog.ErrorContext(ctx, "corpus file missing, run extract first", "path", cfg.DataFile)
		return nil
	}
	if err != nil {
		return err
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	builder := index.NewBuilder(store, index.Assembler{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	}, cfg.BatchSize)

	slog.InfoContext(ctx, "building collection", "collection", cfg.CollectionName, "videos", len(videos))
	stats, err := builder.Build(ctx, videos)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "build complete",
		"videos", stats.Videos, "documents", stats.Documents, "batches", stats.Batches)
	return nil
}

func runServe(ctx context.Context, cfg *config.Config) error {
	if err := cfg.RequireGeneration(); err != nil {
		return err
	}

	videos, err := corpus.Load(cfg.DataFile)
	if errors.Is(err, corpus.ErrCorpusNotFound) {
		slog.WarnContext(ctx, "corpus file missing, serving an empty library", "path", cfg.DataFile)
		videos = nil
	} else if err != nil {
		return err
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	generator, err := gemini.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GenerationModel, providerRetry(cfg))
	if err != nil {
		return err
	}
	defer generator.Close()

	queryLogger, err := retrieval.NewFileQueryLogger(cfg.QueryLogPath)
	if err != nil {
		slog.Warn("failed to create query logger, falling back to stdout", "error", err)
		queryLogger = retrieval.NewQueryLogger(os.Stdout)
	}

	svc := retrieval.NewService(store, generator, queryLogger, cfg.TopK)
	a := app.New(videos, svc, store)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.ServerPort)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func runInspect(ctx context.Context, cfg *config.Config) error {
	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "collection", "name", cfg.CollectionName, "documents", count)

	if count == 0 {
		slog.InfoContext(ctx, "collection is empty")
		return nil
	}

	sample, err := store.Peek(ctx, 3)
	if err != nil {
		return err
	}
	for i, doc := range sample {
		slog.InfoContext(ctx, "sample document",
			"index", i,
			"content", preview(doc.Text),
			"video_id", doc.Metadata.VideoID,
			"title", doc.Metadata.Title,
			"type", doc.Metadata.Type,
			"chunk_index", doc.Metadata.ChunkIndex,
			"start_time", doc.Metadata.StartTime,
		)
	}
	return nil
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= 100 {
		return text
	}
	return string(runes[:100]) + "..."
}
