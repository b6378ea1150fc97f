// Package app assembles the HTTP surface: routes, middleware and handlers.
package app

import (
	"net/http"

	"pibo/features/ask"
	"pibo/features/library"
	"pibo/features/stats"
	"pibo/internal/corpus"
	"pibo/internal/middleware"
)

type App struct {
	Handler http.Handler
}

func New(videos []corpus.Video, answerer ask.Answerer, counter stats.DocumentCounter) *App {
	askHandler := ask.NewHandler(answerer)
	libraryHandler := library.NewHandler(videos)
	statsHandler := stats.NewHandler(len(videos), counter)

	enableCORS := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	mux := http.NewServeMux()

	mux.Handle("POST /ask", middleware.CorrelationID(enableCORS(askHandler.Ask)))
	mux.Handle("GET /videos", middleware.CorrelationID(enableCORS(libraryHandler.List)))
	mux.Handle("GET /videos/{id}", middleware.CorrelationID(enableCORS(libraryHandler.Get)))
	mux.Handle("GET /stats", middleware.CorrelationID(enableCORS(statsHandler.GetStats)))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return &App{Handler: mux}
}
