package config

import (
	"os"

	"taskboard/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	LogLevel    string
	LogJSON     bool
}

// Load reads configuration from the environment (optionally seeded from a
// .env file). DATABASE_URL and JWT_SECRET are mandatory: startup fails
// without them, there are no fallback values.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	// The secret itself is consumed by service.InitJWT; checked here so a
	// misconfigured process dies before it binds the port.
	if os.Getenv("JWT_SECRET") == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "4000"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		AppPort:     port,
		DatabaseURL: dbURL,
		LogLevel:    logLevel,
		LogJSON:     os.Getenv("LOG_JSON") == "true",
	}
}
