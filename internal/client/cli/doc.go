// Package cli provides the interactive PantryKeeper command-line client.
//
// The REPL prompts for the fields of each operation, calls the RPC gateway
// through client.Client and prints the outcome. A background watcher pings
// the server and flips the prompt between online and offline.
package cli
