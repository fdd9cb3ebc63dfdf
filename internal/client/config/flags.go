package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/flagx"
)

var cliFlags = []string{"-a", "-t", "-i", "-r"}

// parseFlags overlays cfg with:
//
//	-a string   RPC gateway address
//	-t string   access token
//	-i int      online check interval, seconds
//	-r int      per-request timeout, seconds (0 disables)
//
// Malformed values panic.
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("pkcli", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "RPC gateway address")
	fs.StringVar(&cfg.AccessToken, "t", cfg.AccessToken, "access token")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval/time.Second), "online check interval (seconds)")
	timeout := fs.Int("r", int(cfg.RequestTimeout/time.Second), "request timeout (seconds)")

	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], cliFlags)); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
