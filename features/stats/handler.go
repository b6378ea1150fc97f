package stats

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"pibo/internal/middleware"
)

type DocumentCounter interface {
	Count(ctx context.Context) (int, error)
}

type Handler struct {
	videos  int
	counter DocumentCounter
}

func NewHandler(corpusSize int, counter DocumentCounter) *Handler {
	return &Handler{videos: corpusSize, counter: counter}
}

type StatsResponse struct {
	Videos    int `json:"videos"`
	Documents int `json:"documents"`
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docs, err := h.counter.Count(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count documents", "error", err)
		h.writeError(ctx, w, "INTERNAL_ERROR", "failed to count documents", http.StatusInternalServerError)
		return
	}

	resp := StatsResponse{Videos: h.videos, Documents: docs}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": resp}); err != nil {
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
