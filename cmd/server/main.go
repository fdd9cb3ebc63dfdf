// Command server runs the PantryKeeper gRPC gateway, the identity webhook and
// the realtime change feed.
package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/pantrykeeper/internal/server"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("pantrykeeper: %v", err)
	}

	app.Run(context.Background())
}
