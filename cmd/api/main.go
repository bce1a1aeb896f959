// cmd/api/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"mcp-weather/internal/app"
	"mcp-weather/internal/config"
	"mcp-weather/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, cfg.AppName)

	a, err := app.New(cfg, log) // <-- inisialisasi client cuaca + registry + routes
	if err != nil {
		log.Error("init app", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx, ":"+cfg.AppPort); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
