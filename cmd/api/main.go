// cmd/api/main.go
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"adcopy/internal/config"
	"adcopy/internal/db"
	"adcopy/internal/db/migrations"
	"adcopy/internal/routes"
)

// @title AI Ad Copy Generator API
// @version 1.0
// @description Generate high-converting ad copy for multiple platforms
// @BasePath /
func main() {
	// Load .env if present
	_ = godotenv.Load()

	cfg := config.Load()

	// Persistence is optional: a missing or unreachable database leaves the
	// generation path fully functional.
	var database *sql.DB
	if cfg.DatabaseURL != "" {
		if err := db.CreateDatabaseIfNotExists(cfg.DatabaseURL); err != nil {
			log.Printf("Failed to ensure database exists: %v - continuing without persistence", err)
		} else if d, err := db.New(cfg.DatabaseURL); err != nil {
			log.Printf("Failed to connect to database: %v - continuing without persistence", err)
		} else {
			defer d.Close()
			if err := migrations.RunMigrations(d.DB); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
			database = d.DB
		}
	} else {
		log.Println("No database configured - running without persistence")
	}

	s3cfg, err := config.NewS3Config()
	if err != nil {
		log.Fatalf("Failed to load S3 configuration: %v", err)
	}

	router := routes.SetupRoutes(database, cfg, s3cfg)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
