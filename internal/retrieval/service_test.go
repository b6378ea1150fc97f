package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pibo/internal/vector"
)

type stubStore struct {
	results []vector.Result
	err     error
	gotTopK int
}

func (s *stubStore) EnsureAbsent(ctx context.Context) error             { return nil }
func (s *stubStore) Create(ctx context.Context) error                   { return nil }
func (s *stubStore) Add(ctx context.Context, _ []vector.Document) error { return nil }
func (s *stubStore) Peek(ctx context.Context, _ int) ([]vector.Result, error) {
	return nil, nil
}
func (s *stubStore) Count(ctx context.Context) (int, error) { return len(s.results), nil }
func (s *stubStore) Query(ctx context.Context, query string, topK int) ([]vector.Result, error) {
	s.gotTopK = topK
	return s.results, s.err
}

type stubGenerator struct {
	gotSystem string
	gotPrompt string
	answer    string
	err       error
}

func (g *stubGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	g.gotSystem = system
	g.gotPrompt = prompt
	return g.answer, g.err
}

func result(text, title, url string, start float64) vector.Result {
	return vector.Result{
		Text:     text,
		Metadata: vector.Metadata{Title: title, URL: url, StartTime: start, Type: vector.TypeTranscript},
	}
}

func TestServiceAnswer(t *testing.T) {
	t.Run("Empty Retrieval Is Not An Error", func(t *testing.T) {
		svc := NewService(&stubStore{}, &stubGenerator{}, nil, 5)

		answer, err := svc.Answer(context.Background(), "생소한 질문", 0)
		require.NoError(t, err)
		assert.False(t, answer.Found)
		assert.Equal(t, NoResultMessage, answer.Answer)
		assert.Empty(t, answer.Citations)
	})

	t.Run("Context And Prompt Assembly", func(t *testing.T) {
		store := &stubStore{results: []vector.Result{
			result("첫 번째 문서", "영상 A", "https://youtu.be/a", 0),
			result("두 번째 문서", "영상 B", "https://youtu.be/b", 30),
		}}
		gen := &stubGenerator{answer: "답변입니다"}
		svc := NewService(store, gen, nil, 5)

		answer, err := svc.Answer(context.Background(), "질문", 0)
		require.NoError(t, err)

		assert.True(t, answer.Found)
		assert.Equal(t, "답변입니다", answer.Answer)
		assert.Equal(t, SystemInstruction, gen.gotSystem)
		assert.Contains(t, gen.gotPrompt, "첫 번째 문서\n\n두 번째 문서")
		assert.Contains(t, gen.gotPrompt, "질문")
		assert.Equal(t, 5, store.gotTopK, "default top-k applies when caller passes zero")
	})

	t.Run("Caller TopK Overrides Default", func(t *testing.T) {
		store := &stubStore{}
		svc := NewService(store, &stubGenerator{}, nil, 5)

		_, err := svc.Answer(context.Background(), "질문", 2)
		require.NoError(t, err)
		assert.Equal(t, 2, store.gotTopK)
	})

	t.Run("Store Error Propagates", func(t *testing.T) {
		svc := NewService(&stubStore{err: errors.New("collection not found")}, &stubGenerator{}, nil, 5)

		_, err := svc.Answer(context.Background(), "질문", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "collection not found")
	})

	t.Run("Generator Error Propagates", func(t *testing.T) {
		store := &stubStore{results: []vector.Result{result("doc", "T", "u", 0)}}
		gen := &stubGenerator{err: errors.New("provider down")}
		svc := NewService(store, gen, nil, 5)

		_, err := svc.Answer(context.Background(), "질문", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "provider down")
	})

	t.Run("Queries Are Logged", func(t *testing.T) {
		var buf bytes.Buffer
		store := &stubStore{results: []vector.Result{result("doc", "T", "u", 0)}}
		svc := NewService(store, &stubGenerator{answer: "ok"}, NewQueryLogger(&buf), 5)

		_, err := svc.Answer(context.Background(), "수면교육", 0)
		require.NoError(t, err)

		var entry QueryLogEntry
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "수면교육", entry.Query)
		assert.Equal(t, 1, entry.NumResults)
	})
}

func TestCitations(t *testing.T) {
	t.Run("Timestamped Deep Link", func(t *testing.T) {
		citations := Citations([]vector.Result{
			result("내용", "영상 A", "https://www.youtube.com/watch?v=a", 93.7),
		})
		require.Len(t, citations, 1)
		assert.Equal(t, "https://www.youtube.com/watch?v=a&t=93s", citations[0].URL)
		assert.Equal(t, "영상 A", citations[0].Title)
	})

	t.Run("Dedup By Base URL Keeps First", func(t *testing.T) {
		citations := Citations([]vector.Result{
			result("top hit", "영상 A", "https://www.youtube.com/watch?v=a", 10),
			result("other video", "영상 B", "https://www.youtube.com/watch?v=b", 0),
			result("same video later", "영상 A", "https://www.youtube.com/watch?v=a", 120),
		})
		require.Len(t, citations, 2)
		assert.Equal(t, "https://www.youtube.com/watch?v=a&t=10s", citations[0].URL)
		assert.Equal(t, "https://www.youtube.com/watch?v=b&t=0s", citations[1].URL)
	})

	t.Run("Snippet Truncated To 100 Runes", func(t *testing.T) {
		long := ""
		for i := 0; i < 150; i++ {
			long += "가"
		}
		citations := Citations([]vector.Result{result(long, "T", "u", 0)})
		require.Len(t, citations, 1)
		assert.Equal(t, 103, len([]rune(citations[0].Snippet)))
		assert.Equal(t, "...", citations[0].Snippet[len(citations[0].Snippet)-3:])
	})
}
