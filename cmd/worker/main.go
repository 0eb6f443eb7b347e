package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"timeless_backend/internal/scheduler"
	"timeless_backend/internal/whatsapp"
	"timeless_backend/platform/config"
	"timeless_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender := whatsapp.NewClient(cfg, log)
	if sender == nil {
		log.Warn("WHATSAPP_URL not configured; order notifications will be dropped")
	}

	worker, err := scheduler.NewWorker(cfg, cfg, sender, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	worker.Run(ctx)
}
