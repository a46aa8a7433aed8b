package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds the runtime settings, read from the environment with an
// optional .env file on top.
type Config struct {
	Addr         string
	DBPath       string
	PostsPerPage int
	LogLevel     zerolog.Level
}

// Load reads .env (if present) and the environment. Missing values
// fall back to defaults suited to local development.
func Load() *Config {
	// A missing .env file is fine; real deployments set env vars.
	_ = godotenv.Load()

	return &Config{
		Addr:         getEnv("ADDR", ":8080"),
		DBPath:       getEnv("DB_PATH", "data/pressroom"),
		PostsPerPage: getEnvInt("POSTS_PER_PAGE", 10),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}
}

func getEnv(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func parseLogLevel(raw string) zerolog.Level {
	level, err := zerolog.ParseLevel(raw)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
