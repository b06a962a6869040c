package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	APP_URL  string
	CURRENCY string

	UPLOAD_DIR      string
	STORAGE_BACKEND string

	SUPABASE_URL         string
	SUPABASE_SERVICE_KEY string
	SUPABASE_BUCKET      string

	AI_VERIFY_URL     string
	AI_VERIFY_TIMEOUT time.Duration

	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	// Empty DB_URL switches the server to the in-memory store.
	DB_URL = getEnv("DB_URL", "")
	JWT_SECRET = mustEnv("JWT_SECRET")

	APP_URL = getEnv("APP_URL", "http://localhost:5173")
	CURRENCY = getEnv("CURRENCY", "eur")

	UPLOAD_DIR = getEnv("UPLOAD_DIR", "./uploads")
	STORAGE_BACKEND = getEnv("STORAGE_BACKEND", "local")

	SUPABASE_URL = getEnv("SUPABASE_URL", "")
	SUPABASE_SERVICE_KEY = getEnv("SUPABASE_SERVICE_KEY", "")
	SUPABASE_BUCKET = getEnv("SUPABASE_BUCKET", "artworks")

	AI_VERIFY_URL = getEnv("AI_VERIFY_URL", "http://localhost:8000")
	AI_VERIFY_TIMEOUT = time.Duration(getEnvInt("AI_VERIFY_TIMEOUT_SECONDS", 15)) * time.Second

	STRIPE_SECRET_KEY = getEnv("STRIPE_SECRET_KEY", "")
	STRIPE_WEBHOOK_SECRET = getEnv("STRIPE_WEBHOOK_SECRET", "")

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")
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

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return n
}
