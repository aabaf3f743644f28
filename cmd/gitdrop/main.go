package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gitdrop/internal/buildinfo"
	"github.com/dmitrijs2005/gitdrop/internal/cli"
	"github.com/dmitrijs2005/gitdrop/internal/config"
	"github.com/dmitrijs2005/gitdrop/internal/logging"
	"github.com/dmitrijs2005/gitdrop/internal/telemetry"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewSlog(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracing, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    "gitdrop",
		ServiceVersion: buildinfo.Version(),
		OTLPEndpoint:   cfg.OTLPEndpoint,
	}, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		_ = tracing.Shutdown(context.Background())
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.Close(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "shutdown failed", "error", err)
	}
	_ = tracing.Shutdown(shutdownCtx)
}
