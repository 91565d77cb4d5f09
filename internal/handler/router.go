/*
Package handler provides the HTTP surface of the relay.

The relay is addressed almost entirely through its chat transport; HTTP exposes
only a liveness endpoint used by the hosting platform's keep-alive probe. This
file defines the Router, applying logging, CORS, and recovery middleware before
the health route.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"anonchat/internal/app/relay"
	"anonchat/internal/configs"
	"anonchat/internal/pkg/logx"
	"anonchat/internal/pkg/resp"
)

// AppDeps carries the dependencies the HTTP handlers need.
type AppDeps struct {
	Service *relay.Service
	Config  *configs.AppConfig
}

// Router sets up the HTTP routing table (chi.Router) for the liveness surface.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"status":       "ok",
			"service":      "Anonymous Chat Relay",
			"environment":  deps.Config.Environment,
			"capacity":     deps.Config.ChatCapacity,
			"participants": deps.Service.Registry().Len(),
		}
		resp.RespondSuccess(w, r, data)
	})

	return r
}
