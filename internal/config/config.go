// internal/config/config.go
package config

import (
	"net/url"
	"os"
	"strings"
)

type Config struct {
	Port        string
	Environment string

	// DatabaseURL empty means the service runs without persistence.
	DatabaseURL string

	DeepSeekAPIKey  string
	DeepSeekBaseURL string
	DeepSeekModel   string

	// JWTSecret empty leaves the mutating record endpoints open.
	JWTSecret string

	CORSOrigins []string
}

func Load() *Config {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		if host := os.Getenv("PSQL_HOST"); host != "" {
			port := getEnv("PSQL_PORT", "5432")
			user := getEnv("PSQL_USER", "postgres")
			password := getEnv("PSQL_PASSWORD", "postgres")
			dbName := getEnv("PSQL_DB_NAME", "ad_copy_generator")

			u := &url.URL{
				Scheme: "postgres",
				User:   url.UserPassword(user, password),
				Host:   host + ":" + port,
				Path:   dbName,
			}
			q := u.Query()
			q.Set("sslmode", "disable")
			u.RawQuery = q.Encode()
			databaseURL = u.String()
		}
	}

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if extra := os.Getenv("FRONTEND_URL"); extra != "" {
		origins = append(origins, strings.Split(extra, ",")...)
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		DatabaseURL:     databaseURL,
		DeepSeekAPIKey:  os.Getenv("DEEPSEEK_API_KEY"),
		DeepSeekBaseURL: getEnv("DEEPSEEK_BASE_URL", "https://api.deepseek.com/v1"),
		DeepSeekModel:   getEnv("DEEPSEEK_MODEL", "deepseek-chat"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		CORSOrigins:     origins,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
