// Package ask exposes the question-answering pipeline over HTTP.
package ask

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"pibo/internal/middleware"
	"pibo/internal/retrieval"
)

type Answerer interface {
	Answer(ctx context.Context, query string, topK int) (*retrieval.Answer, error)
}

type Handler struct {
	svc Answerer
}

func NewHandler(svc Answerer) *Handler {
	return &Handler{svc: svc}
}

type askRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(ctx, w, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		h.writeError(ctx, w, "VALIDATION_ERROR", "query is required", http.StatusBadRequest)
		return
	}

	slog.InfoContext(ctx, "answering question", "query", req.Query, "top_k", req.TopK)

	answer, err := h.svc.Answer(ctx, req.Query, req.TopK)
	if err != nil {
		slog.ErrorContext(ctx, "failed to answer question", "error", err, "query", req.Query)
		h.writeError(ctx, w, "INTERNAL_ERROR", err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": answer}); err != nil {
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
