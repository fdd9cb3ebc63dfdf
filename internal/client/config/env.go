package config

import (
	"os"

	"github.com/joho/godotenv"
)

// loadDotEnv is a seam for tests.
var loadDotEnv = func() error { return godotenv.Load() }

// parseEnv overlays PANTRY_SERVER_ADDR and PANTRY_ACCESS_TOKEN, after loading
// a .env file from the working directory when one exists.
func parseEnv(cfg *Config) {
	_ = loadDotEnv()

	if v := os.Getenv("PANTRY_SERVER_ADDR"); v != "" {
		cfg.ServerEndpointAddr = v
	}
	if v := os.Getenv("PANTRY_ACCESS_TOKEN"); v != "" {
		cfg.AccessToken = v
	}
}
