// internal/routes/routes.go
package routes

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"adcopy/internal/config"
)

// SetupRoutes builds the router. db may be nil when the service runs
// without persistence.
func SetupRoutes(db *sql.DB, cfg *config.Config, s3cfg *config.S3Config) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "AI Ad Copy Generator API",
			"version": "1.0.0",
			"status":  "active",
		})
	})

	r.Get("/health", healthHandler(db))

	RegisterSwaggerRoutes(r)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		RegisterAdRoutes(r, db, cfg, s3cfg)
		r.Get("/ads/health", healthHandler(db))
	})

	return r
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbStatus := "disconnected"
		if db != nil {
			if err := db.PingContext(r.Context()); err == nil {
				dbStatus = "connected"
			} else {
				dbStatus = "unhealthy: " + err.Error()
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"service":  "ads",
			"status":   "healthy",
			"database": dbStatus,
		})
	}
}
