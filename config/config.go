package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	JWTKey         string
	Debug          bool
}

// Load reads a .env file when present and falls back to process env vars.
// JWT_KEY may be empty: the arena then runs guest-only.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:   os.Getenv("PORT"),
		JWTKey: os.Getenv("JWT_KEY"),
		Debug:  os.Getenv("DEBUG") == "true",
	}
	if cfg.Port == "" {
		cfg.Port = "5000"
	}

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000"
	}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return cfg
}
