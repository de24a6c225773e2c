package config

import (
	"os"
	"strings"
)

// Config is the environment-driven configuration surface.
type Config struct {
	Port          string
	DatabaseURL   string
	OpenAIKey     string
	OpenAIBaseURL string
	UploadsDir    string
}

func Load() Config {
	cfg := Config{
		Port:          getenv("PORT", "3001"),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		OpenAIKey:     strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		UploadsDir:    getenv("UPLOADS_DIR", "uploads"),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
