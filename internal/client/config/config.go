package config

import "time"

// Config holds runtime settings for the PantryKeeper CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the RPC gateway.
//   - AccessToken: caller token issued by the identity provider.
//   - OnlineCheckInterval: period of the background reachability check.
//   - RequestTimeout: bound on each RPC issued by a command; zero disables it.
type Config struct {
	ServerEndpointAddr  string
	AccessToken         string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig applies, weakest first: defaults, environment, JSON file,
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
