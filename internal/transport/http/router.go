package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"quiz-builder/internal/app"
)

// NewRouter wires the health check, the websocket endpoint and read-only
// JSON views of the collections. With no allowedOrigins any origin may call
// the API.
func NewRouter(session *app.Session, allowedOrigins ...string) http.Handler {
	ws := NewWSHandler(session)
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ws", ws.ServeWS)
	r.Route("/api", func(r chi.Router) {
		r.Get("/view", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, session.View())
		})
		r.Get("/quizzes", func(w http.ResponseWriter, r *http.Request) {
			var out []app.QuizSummary
			session.Read(func(c *app.Controller) {
				for _, q := range c.Quizzes() {
					out = append(out, app.QuizSummary{
						ID:            q.ID,
						Title:         q.Title,
						CreatedAt:     q.CreatedAt,
						QuestionCount: len(q.Questions),
					})
				}
			})
			writeJSON(w, nonNil(out))
		})
		r.Get("/attempts", func(w http.ResponseWriter, r *http.Request) {
			var out []app.HistoryEntry
			session.Read(func(c *app.Controller) { out = c.History() })
			writeJSON(w, nonNil(out))
		})
	})
	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
