// Package library serves the read-only video browser: the full corpus list
// and a per-video detail view with a transcript preview.
package library

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"pibo/internal/corpus"
	"pibo/internal/middleware"
)

const previewSegments = 5

type Handler struct {
	videos []corpus.Video
	byID   map[string]corpus.Video
}

func NewHandler(videos []corpus.Video) *Handler {
	byID := make(map[string]corpus.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	return &Handler{videos: videos, byID: byID}
}

type videoSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	URL           string `json:"url"`
	HasTranscript bool   `json:"has_transcript"`
}

type segmentView struct {
	Start float64 `json:"start"`
	Text  string  `json:"text"`
}

type videoDetail struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	URL            string        `json:"url"`
	Description    string        `json:"description,omitempty"`
	HasTranscript  bool          `json:"has_transcript"`
	SegmentCount   int           `json:"segment_count"`
	Preview        []segmentView `json:"preview,omitempty"`
	TranscriptText string        `json:"transcript_text,omitempty"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	summaries := make([]videoSummary, 0, len(h.videos))
	for _, v := range h.videos {
		summaries = append(summaries, videoSummary{
			ID:            v.ID,
			Title:         v.Title,
			URL:           v.WatchURL(),
			HasTranscript: v.HasTranscript(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	resp := map[string]interface{}{
		"data": summaries,
		"meta": map[string]int{"count": len(summaries)},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	v, ok := h.byID[id]
	if !ok {
		h.writeError(ctx, w, "NOT_FOUND", "video not found", http.StatusNotFound)
		return
	}

	detail := videoDetail{
		ID:            v.ID,
		Title:         v.Title,
		URL:           v.WatchURL(),
		Description:   v.Description,
		HasTranscript: v.HasTranscript(),
		SegmentCount:  len(v.Transcript),
	}

	if v.HasTranscript() {
		n := previewSegments
		if len(v.Transcript) < n {
			n = len(v.Transcript)
		}
		for _, seg := range v.Transcript[:n] {
			detail.Preview = append(detail.Preview, segmentView{Start: seg.Start, Text: seg.Text})
		}

		texts := make([]string, len(v.Transcript))
		for i, seg := range v.Transcript {
			texts[i] = seg.Text
		}
		detail.TranscriptText = strings.Join(texts, " ")
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": detail}); err != nil {
		slog.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, code, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
		"correlationId": middleware.GetCorrelationID(ctx),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
