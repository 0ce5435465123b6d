// internal/routes/ad_routes.go
package routes

import (
	"database/sql"
	"log"

	"github.com/go-chi/chi/v5"

	"adcopy/internal/config"
	"adcopy/internal/handlers"
	"adcopy/internal/interfaces"
	custommw "adcopy/internal/middleware"
	"adcopy/internal/repository"
	"adcopy/internal/services"
)

func RegisterAdRoutes(router chi.Router, db *sql.DB, cfg *config.Config, s3cfg *config.S3Config) {
	log.Println("Registering ad routes...")

	var repo interfaces.AdRepository
	if db != nil {
		repo = repository.NewAdRepository(db)
	}

	client := services.NewDeepSeekClient(cfg.DeepSeekBaseURL, cfg.DeepSeekAPIKey, cfg.DeepSeekModel)
	generator := services.NewAdGenerator(client)
	archiver := services.NewAdArchiver(s3cfg)

	adHandler := handlers.NewAdHandler(repo, generator, archiver)

	router.Get("/platforms", adHandler.GetPlatforms)

	router.Route("/ads", func(r chi.Router) {
		r.Post("/generate", adHandler.GenerateAds)
		r.Get("/history", adHandler.GetAdHistory)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", adHandler.GetAd)

			r.Group(func(r chi.Router) {
				if cfg.JWTSecret != "" {
					r.Use(custommw.JWTAuth(cfg.JWTSecret))
				}
				r.Put("/favorite", adHandler.ToggleFavorite)
				r.Put("/tags", adHandler.UpdateTags)
				r.Delete("/", adHandler.DeleteAd)
			})
		})
	})
}
