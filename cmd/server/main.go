package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/subtitle-flow/internal/config"
	"github.com/nguyentantai21042004/subtitle-flow/internal/extractor"
	"github.com/nguyentantai21042004/subtitle-flow/internal/logger"
	"github.com/nguyentantai21042004/subtitle-flow/internal/pipeline"
	"github.com/nguyentantai21042004/subtitle-flow/internal/server"
	"github.com/nguyentantai21042004/subtitle-flow/internal/transcriber"
	"github.com/nguyentantai21042004/subtitle-flow/internal/translator"
	"github.com/nguyentantai21042004/subtitle-flow/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	ctx := context.Background()

	// API keys may live in a local .env next to the config.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKeys = append([]string{key}, cfg.Gemini.APIKeys...)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "Video subtitle translator starting")
	log.Info(ctx, "Listening on: %s", cfg.Server.Addr)
	log.Info(ctx, "Languages: %v", cfg.Languages)

	if err := os.MkdirAll(cfg.Paths.Temp, 0755); err != nil {
		log.Error(ctx, "Failed to create temp directory: %v", err)
		os.Exit(1)
	}
	if len(cfg.Gemini.APIKeys) == 0 {
		log.Warn(ctx, "No Gemini API keys configured; translation jobs will fail")
	}

	// Wire the pipeline with explicit dependencies.
	exec := executor.New()
	pipe := pipeline.New(cfg,
		extractor.New(cfg, exec, log),
		transcriber.New(cfg, exec, log),
		translator.NewGemini(cfg.Gemini.APIKeys, cfg.Gemini.Model, log),
		log,
	)

	srv := server.New(cfg, pipe, log)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(cfg.Server.Addr); err != nil {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "Shutdown error: %v", err)
	}

	log.Info(ctx, "Server stopped")
}
