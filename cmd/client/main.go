package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/firflight/firflight/internal/buildinfo"
	"github.com/firflight/firflight/internal/client/cli"
	"github.com/firflight/firflight/internal/client/config"
	"github.com/firflight/firflight/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.New(os.Stderr, "text", cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "client stopped with error", "error", err)
		os.Exit(1)
	}
}
