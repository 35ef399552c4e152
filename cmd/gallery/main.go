package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ModelPreview/internal/config"
	"ModelPreview/internal/engine"
	"ModelPreview/internal/gallery"
	"ModelPreview/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Default()
	logger.InitWithLevel(cfg.Debug)
	defer logger.Sync()

	cfg.AssetDir = config.FindAssetDir(cfg.AssetDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	viewer, err := engine.NewViewer(cfg, gallery.DefaultEntries())
	if err != nil {
		logger.Log.Error("Invalid configuration", zap.Error(err))
		os.Exit(1)
	}
	if err := viewer.Run(ctx); err != nil {
		logger.Log.Error("Viewer failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
