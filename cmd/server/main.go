package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/hopekeeper/internal/server"
	"github.com/dmitrijs2005/hopekeeper/internal/server/config"
)

func main() {
	app, err := server.NewApp(config.LoadConfig())
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
