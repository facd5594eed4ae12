package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
