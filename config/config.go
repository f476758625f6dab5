package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	APP_URL     string
	CORS_ORIGIN string

	STATE_DIR string
)

// Request-scoped secrets (STRIPE_SECRET_KEY, STRIPE_WEBHOOK_SECRET,
// MOYASAR_SECRET_KEY, SERVICE_ROLE_KEY, GOOGLE_CLIENT_ID/SECRET) are read
// from the environment at the start of each handler invocation, never cached
// here. A handler missing its secret answers 500 without echoing the value.

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	APP_URL = getEnv("APP_URL", "http://localhost:3000")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:3000")

	STATE_DIR = getEnv("STATE_DIR", ".thakirni-state")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
