package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// ConfigFileEnv names the variable holding the JSON config path.
const ConfigFileEnv = "PANTRY_CONFIG"

// loadDotEnv is a seam for tests.
var loadDotEnv = func() error { return godotenv.Load() }

// parseEnv overlays PANTRY_* environment variables. A .env file in the
// working directory is loaded first when present; variables already set in
// the process environment win over the file.
//
// Recognized variables:
//
//	PANTRY_GRPC_ADDR, PANTRY_HTTP_ADDR, PANTRY_STORE_BACKEND,
//	PANTRY_MONGO_URI, PANTRY_MONGO_DATABASE, PANTRY_DATABASE_DSN,
//	PANTRY_SECRET_KEY, PANTRY_WEBHOOK_API_KEY, PANTRY_LIST_REMOVAL_MODE,
//	PANTRY_STORE_CONNECT_TIMEOUT (Go duration), PANTRY_LOG_LEVEL
//
// Empty variables are ignored; an unparsable timeout panics like the other
// loaders do on malformed input.
func parseEnv(config *Config) {
	_ = loadDotEnv()

	strs := map[string]*string{
		"PANTRY_GRPC_ADDR":         &config.EndpointAddrGRPC,
		"PANTRY_HTTP_ADDR":         &config.EndpointAddrHTTP,
		"PANTRY_STORE_BACKEND":     &config.StoreBackend,
		"PANTRY_MONGO_URI":         &config.MongoURI,
		"PANTRY_MONGO_DATABASE":    &config.MongoDatabase,
		"PANTRY_DATABASE_DSN":      &config.DatabaseDSN,
		"PANTRY_SECRET_KEY":        &config.SecretKey,
		"PANTRY_WEBHOOK_API_KEY":   &config.WebhookAPIKey,
		"PANTRY_LIST_REMOVAL_MODE": &config.ListRemovalMode,
		"PANTRY_LOG_LEVEL":         &config.LogLevel,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("PANTRY_STORE_CONNECT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.StoreConnectTimeout = d
	}
}
