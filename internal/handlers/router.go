package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gauchoeats/gaucho/internal/config"
	"github.com/gauchoeats/gaucho/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the middleware stack and every backend route
func NewRouter(cfg *config.Config, dining *DiningHandler, health *HealthHandler, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", chimiddleware.RequestIDHeader, middleware.APIKeyHeader},
		ExposedHeaders:   []string{chimiddleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", health.ServeHTTP)

	r.Get("/user_info", dining.UserInfo)
	r.Post("/update_preferences", dining.UpdatePreferences)
	r.Get("/menu", dining.Menu)
	r.Get("/recommend", dining.Recommend)

	r.Get("/wait_time", dining.WaitTime)
	r.With(middleware.APIKeyAuth(cfg.Auth)).Post("/wait_time", dining.RecordWaitTime)

	return r
}
