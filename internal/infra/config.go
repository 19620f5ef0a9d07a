package infra

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	ChatProvider string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	UnsplashAPIKey string
	UnsplashRPS    float64
	PhotoCacheTTL  time.Duration

	ShareBaseURL string
	CORSOrigins  []string
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := &Config{
		Port:           getEnvWithDefault("PORT", "8080"),
		ChatProvider:   strings.ToLower(getEnvWithDefault("CHAT_PROVIDER", "gemini")),
		GeminiAPIKey:   getEnvWithDefault("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiModel:    getEnvWithDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),
		UnsplashAPIKey: os.Getenv("UNSPLASH_API_KEY"),
		UnsplashRPS:    getFloatWithDefault("UNSPLASH_RPS", 1),
		PhotoCacheTTL:  getDurationWithDefault("PHOTO_CACHE_TTL", 30*time.Minute),
		ShareBaseURL:   getEnvWithDefault("SHARE_BASE_URL", "http://localhost:5173/"),
		CORSOrigins:    splitList(getEnvWithDefault("CORS_ORIGINS", "*")),
	}

	if cfg.UnsplashAPIKey == "" {
		log.Println("UNSPLASH_API_KEY is not set, itinerary images are disabled")
	}
	return cfg
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFloatWithDefault(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		log.Printf("Invalid %s=%q, using %v", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Invalid %s=%q, using %v", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
