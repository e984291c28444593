package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *implServer) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(s.requestID)
	router.Use(s.requestLogger)
	router.Use(middleware.Recoverer)

	router.Get("/", s.index)
	router.Post("/", s.submit)
	router.Post("/export", s.exportDocx)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(apiRouter chi.Router) {
		apiRouter.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
		apiRouter.Post("/summarize", s.summarizeJSON)
	})

	return router
}

func (s *implServer) Handler() http.Handler {
	return s.router
}
