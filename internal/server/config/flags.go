package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-w string   HTTP bind address (e.g., ":8080")
//	-b string   store backend: mongo, postgres or memory
//	-m string   MongoDB URI
//	-n string   MongoDB database name
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-k string   identity webhook API key
//	-r string   shopping list removal mode: atomic or rewrite
//	-t int      store connect timeout, seconds
//	-l string   log level
//
// Only the flags above are taken from os.Args (see flagx.FilterArgs).
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-w", "-b", "-m", "-n", "-d", "-s", "-k", "-r", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port of the gRPC gateway")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "address and port of the HTTP endpoint")
	fs.StringVar(&config.StoreBackend, "b", config.StoreBackend, "store backend (mongo, postgres, memory)")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "MongoDB URI")
	fs.StringVar(&config.MongoDatabase, "n", config.MongoDatabase, "MongoDB database")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.WebhookAPIKey, "k", config.WebhookAPIKey, "identity webhook API key")
	fs.StringVar(&config.ListRemovalMode, "r", config.ListRemovalMode, "shopping list removal mode (atomic, rewrite)")

	connectTimeout := fs.Int("t", int(config.StoreConnectTimeout.Seconds()), "store connect timeout (in seconds)")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.StoreConnectTimeout = time.Duration(*connectTimeout) * time.Second
}
