package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/hopekeeper/internal/client/cli"
	"github.com/dmitrijs2005/hopekeeper/internal/client/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(config.LoadConfig())
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
