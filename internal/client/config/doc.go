// Package config loads runtime configuration for the PantryKeeper CLI.
//
// Sources, weakest first: built-in defaults, PANTRY_SERVER_ADDR and
// PANTRY_ACCESS_TOKEN (a .env file is honored), an optional JSON file given
// with -c/-config or PANTRY_CLI_CONFIG, then the -a, -t, -i and -r flags.
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "access_token": "eyJ...",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s"
//	}
package config
