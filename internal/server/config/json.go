package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pantrykeeper/internal/flagx"
	"github.com/dmitrijs2005/pantrykeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Durations use
// timex.Duration so both "10s" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrGRPC    string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP    string         `json:"endpoint_addr_http"`
	StoreBackend        string         `json:"store_backend"`
	MongoURI            string         `json:"mongo_uri"`
	MongoDatabase       string         `json:"mongo_database"`
	DatabaseDSN         string         `json:"database_dsn"`
	SecretKey           string         `json:"secret_key"`
	WebhookAPIKey       string         `json:"webhook_api_key"`
	ListRemovalMode     string         `json:"list_removal_mode"`
	StoreConnectTimeout timex.Duration `json:"store_connect_timeout"`
	LogLevel            string         `json:"log_level"`
}

// parseJson loads configuration values from a JSON file into config.
//
// The file path comes from the -c/-config flags or, failing that, from the
// PANTRY_CONFIG variable. Without a path nothing is loaded. Only keys present
// in the file with non-zero values override config. An unreadable file or
// invalid JSON panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.ConfigFileFlag(ConfigFileEnv)

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.StoreBackend, c.StoreBackend)
	setString(&config.MongoURI, c.MongoURI)
	setString(&config.MongoDatabase, c.MongoDatabase)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.WebhookAPIKey, c.WebhookAPIKey)
	setString(&config.ListRemovalMode, c.ListRemovalMode)
	setString(&config.LogLevel, c.LogLevel)
	if c.StoreConnectTimeout.Duration != 0 {
		config.StoreConnectTimeout = c.StoreConnectTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
