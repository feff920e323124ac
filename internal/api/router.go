package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", PingHandler)

	r.Route("/api/highlights", func(r chi.Router) {
		r.Post("/process", app.ProcessAllHandler)
		r.Post("/generate/{videoID}", app.GenerateHandler)
		r.Get("/video/{videoID}", app.VideoHighlightsHandler)
		r.Get("/configs", app.ListConfigsHandler)
		r.Post("/configs", app.CreateConfigHandler)
	})

	return r
}
