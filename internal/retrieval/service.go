// Package retrieval implements the question-answering pipeline: retrieve the
// nearest indexed documents, assemble them into a prompt, and ask the answer
// model, returning the completion with deduplicated video citations.
package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pibo/internal/vector"
)

type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Citation points at the video a retrieved chunk came from, deep-linked to
// the chunk's timestamp.
type Citation struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

type Answer struct {
	Query     string     `json:"query"`
	Found     bool       `json:"found"`
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
}

type Service struct {
	store     vector.Store
	generator Generator
	logger    *QueryLogger
	topK      int
}

func NewService(store vector.Store, gen Generator, logger *QueryLogger, topK int) *Service {
	return &Service{store: store, generator: gen, logger: logger, topK: topK}
}

// Answer runs one query end to end. Zero retrieved documents is a defined
// outcome (Found=false, NoResultMessage), not an error; provider failures
// propagate to the caller.
func (s *Service) Answer(ctx context.Context, query string, topK int) (*Answer, error) {
	start := time.Now()
	if topK <= 0 {
		topK = s.topK
	}

	results, err := s.store.Query(ctx, query, topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	if len(results) == 0 {
		slog.InfoContext(ctx, "no documents retrieved", "query", query)
		s.log(query, 0, time.Since(start))
		return &Answer{Query: query, Found: false, Answer: NoResultMessage, Citations: []Citation{}}, nil
	}

	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}

	prompt := BuildPrompt(BuildContext(texts), query)
	completion, err := s.generator.Generate(ctx, SystemInstruction, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	s.log(query, len(results), time.Since(start))

	return &Answer{
		Query:     query,
		Found:     true,
		Answer:    completion,
		Citations: Citations(results),
	}, nil
}

func (s *Service) log(query string, numResults int, d time.Duration) {
	if s.logger != nil {
		s.logger.Log(QueryLogEntry{Query: query, NumResults: numResults, Duration: d})
	}
}

// Citations builds one timestamped deep link per source video. Results from
// the same video at different timestamps collapse to the first occurrence,
// which is also the highest ranked one.
func Citations(results []vector.Result) []Citation {
	seen := make(map[string]bool)
	citations := make([]Citation, 0, len(results))

	for _, r := range results {
		base := r.Metadata.URL
		if seen[base] {
			continue
		}
		seen[base] = true

		citations = append(citations, Citation{
			Title:   r.Metadata.Title,
			URL:     fmt.Sprintf("%s&t=%ds", base, int(r.Metadata.StartTime)),
			Snippet: snippet(r.Text, 100),
		})
	}
	return citations
}

func snippet(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
