package routes

import (
	"net/http"
	"time"

	"abrigo/backend/internal/api"
	"abrigo/backend/internal/config"
	"abrigo/backend/internal/logging"
	"abrigo/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes builds the chi router. gatherer is the registry the
// metrics in deps were registered on.
func RegisterRoutes(cfg *config.Config, deps *api.Dependencies, gatherer prometheus.Gatherer, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-User-Id", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// health check
	var pinger api.Pinger
	if deps.SQL != nil {
		pinger = deps.SQL
	}
	r.Get("/healthCheck", api.HealthCheckHandler(pinger, upSince))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	handlers := api.NewHandlers(deps)
	limiter := middleware.NewRateLimiter(cfg.PublicRateLimit, cfg.PublicRateBurst)

	RegisterAPIRoutes(r, handlers, deps, limiter)

	return r
}
