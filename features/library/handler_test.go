package library

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pibo/internal/corpus"
)

func testVideos() []corpus.Video {
	return []corpus.Video{
		{
			ID:    "v1",
			Title: "신생아 목욕",
			URL:   "https://www.youtube.com/watch?v=v1",
			Transcript: []corpus.Segment{
				{Text: "하나", Start: 0},
				{Text: "둘", Start: 2},
				{Text: "셋", Start: 4},
				{Text: "넷", Start: 6},
				{Text: "다섯", Start: 8},
				{Text: "여섯", Start: 10},
			},
		},
		{ID: "v2", Title: "이유식", Description: "설명"},
	}
}

func TestList(t *testing.T) {
	h := NewHandler(testVideos())

	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []videoSummary `json:"data"`
		Meta map[string]int `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, 2, resp.Meta["count"])
	assert.True(t, resp.Data[0].HasTranscript)
	assert.False(t, resp.Data[1].HasTranscript)
	assert.Equal(t, "https://www.youtube.com/watch?v=v2", resp.Data[1].URL)
}

func TestGet(t *testing.T) {
	mux := http.NewServeMux()
	h := NewHandler(testVideos())
	mux.HandleFunc("GET /videos/{id}", h.Get)

	t.Run("Transcript Preview Capped At Five", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/videos/v1", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data videoDetail `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 6, resp.Data.SegmentCount)
		assert.Len(t, resp.Data.Preview, 5)
		assert.Equal(t, "하나 둘 셋 넷 다섯 여섯", resp.Data.TranscriptText)
	})

	t.Run("No Transcript", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/videos/v2", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data videoDetail `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Data.HasTranscript)
		assert.Empty(t, resp.Data.Preview)
		assert.Empty(t, resp.Data.TranscriptText)
	})

	t.Run("Unknown Video", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/videos/nope", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "NOT_FOUND")
	})
}
