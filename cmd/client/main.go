package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/config"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	app, err := client.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	email := os.Getenv("TRACKER_EMAIL")
	password := os.Getenv("TRACKER_PASSWORD")
	if err := app.SignIn(ctx, email, password); err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("%v", err)
	}
}
