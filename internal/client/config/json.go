package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pantrykeeper/internal/flagx"
	"github.com/dmitrijs2005/pantrykeeper/internal/timex"
)

// ConfigFileEnv names the variable holding the JSON config path when no -c
// flag is given.
const ConfigFileEnv = "PANTRY_CLI_CONFIG"

// fileConfig is the on-disk shape of the CLI config.
type fileConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	AccessToken         string         `json:"access_token"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with the file named by -c/-config or
// PANTRY_CLI_CONFIG. Absent or zero values leave cfg unchanged; read and
// decode errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag(ConfigFileEnv)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		panic(err)
	}

	if fc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = fc.ServerEndpointAddr
	}
	if fc.AccessToken != "" {
		cfg.AccessToken = fc.AccessToken
	}
	if fc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
}
