package ask

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pibo/internal/retrieval"
)

type stubAnswerer struct {
	answer   *retrieval.Answer
	err      error
	gotQuery string
	gotTopK  int
}

func (s *stubAnswerer) Answer(ctx context.Context, query string, topK int) (*retrieval.Answer, error) {
	s.gotQuery = query
	s.gotTopK = topK
	return s.answer, s.err
}

func doAsk(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Ask(rec, req)
	return rec
}

func TestHandlerAsk(t *testing.T) {
	t.Run("Returns Answer", func(t *testing.T) {
		svc := &stubAnswerer{answer: &retrieval.Answer{
			Query:  "열이 날 때",
			Found:  true,
			Answer: "해열제를 준비하세요",
			Citations: []retrieval.Citation{
				{Title: "영상 A", URL: "https://www.youtube.com/watch?v=a&t=10s"},
			},
		}}
		h := NewHandler(svc)

		rec := doAsk(h, `{"query": "열이 날 때", "top_k": 3}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "열이 날 때", svc.gotQuery)
		assert.Equal(t, 3, svc.gotTopK)

		var resp struct {
			Data retrieval.Answer `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Data.Found)
		assert.Equal(t, "해열제를 준비하세요", resp.Data.Answer)
		require.Len(t, resp.Data.Citations, 1)
	})

	t.Run("Empty Query Rejected", func(t *testing.T) {
		h := NewHandler(&stubAnswerer{})

		rec := doAsk(h, `{"query": "   "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("Bad JSON Rejected", func(t *testing.T) {
		h := NewHandler(&stubAnswerer{})

		rec := doAsk(h, `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Service Error Is 500", func(t *testing.T) {
		h := NewHandler(&stubAnswerer{err: errors.New("provider down")})

		rec := doAsk(h, `{"query": "질문"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	})
}
