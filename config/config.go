package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string
	APP_ENV    string

	CORS_ORIGIN string
	SESSION_TTL time.Duration

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	STRIPE_WEBHOOK_SECRET string

	// DotenvLoaded is false when no .env file was found and only the process
	// environment is used.
	DotenvLoaded bool
)

// LoadEnv reads .env (if any) and the environment. It reports every missing
// required variable at once.
func LoadEnv() error {
	DotenvLoaded = godotenv.Load() == nil

	var missing []string
	mustEnv := func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			missing = append(missing, key)
		}
		return v
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	APP_ENV = getEnv("APP_ENV", "development")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")

	// Google sign-in is optional; when enabled it needs all three.
	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	if GOOGLE_CLIENT_ID != "" {
		GOOGLE_CLIENT_SECRET = mustEnv("GOOGLE_CLIENT_SECRET")
		GOOGLE_REDIRECT_URL = mustEnv("GOOGLE_REDIRECT_URL")
	}
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")

	STRIPE_WEBHOOK_SECRET = getEnv("STRIPE_WEBHOOK_SECRET", "")

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return fmt.Errorf("invalid SESSION_TTL %q", os.Getenv("SESSION_TTL"))
	}
	SESSION_TTL = ttl

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func IsProduction() bool {
	return APP_ENV == "production"
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
