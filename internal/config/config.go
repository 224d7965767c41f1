package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string
}

// Load reads configuration from .env (when present) and the environment.
// Every key has a working default so the server starts with no setup.
func Load(logger zerolog.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		Addr:     getEnv("ADDR", ":8080"),
		DBPath:   getEnv("DB_PATH", "cheerbase.db"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	logger.Info().
		Str("addr", cfg.Addr).
		Str("db_path", cfg.DBPath).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
