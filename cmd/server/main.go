package main

import (
	"context"
	"log"

	"github.com/wcorp/cyberrange/internal/server"
	"github.com/wcorp/cyberrange/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}

}
