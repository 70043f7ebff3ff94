package server

import (
	"os"

	"github.com/joho/godotenv"
)

// EnvConfig holds server settings sourced from the environment.
type EnvConfig struct {
	Port        string
	Environment string
	DataPattern string
}

// LoadEnv reads server settings from a .env file when present, then the
// process environment. Missing values fall back to defaults.
func LoadEnv() EnvConfig {
	// A missing .env file is fine, the process environment still applies.
	_ = godotenv.Load()

	return EnvConfig{
		Port:        envOr("RECUPERA_PORT", "8080"),
		Environment: envOr("RECUPERA_ENV", "production"),
		DataPattern: os.Getenv("RECUPERA_DATA"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
