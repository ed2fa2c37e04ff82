// Watch mode: monitors an input directory and, for every video
// dropped into it, produces a translated WebVTT track, a standalone
// player page and a transcript document in the output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/subtitle-flow/internal/config"
	"github.com/nguyentantai21042004/subtitle-flow/internal/export"
	"github.com/nguyentantai21042004/subtitle-flow/internal/extractor"
	"github.com/nguyentantai21042004/subtitle-flow/internal/logger"
	"github.com/nguyentantai21042004/subtitle-flow/internal/pipeline"
	"github.com/nguyentantai21042004/subtitle-flow/internal/player"
	"github.com/nguyentantai21042004/subtitle-flow/internal/transcriber"
	"github.com/nguyentantai21042004/subtitle-flow/internal/translator"
	"github.com/nguyentantai21042004/subtitle-flow/internal/watcher"
	"github.com/nguyentantai21042004/subtitle-flow/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	sourceLang := flag.String("source", "en", "source language code")
	targetLang := flag.String("target", "fr", "target language code")
	flag.Parse()

	ctx := context.Background()

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
	log.Info(ctx, "Subtitle pipeline (watch mode) starting")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Languages: %s -> %s", *sourceLang, *targetLang)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	exec := executor.New()
	pipe := pipeline.New(cfg,
		extractor.New(cfg, exec, log),
		transcriber.New(cfg, exec, log),
		translator.NewGemini(cfg.Gemini.APIKeys, cfg.Gemini.Model, log),
		log,
	)

	handler := newJobHandler(cfg, pipe, log, *sourceLang, *targetLang)

	w, err := watcher.New(cfg.Paths.Input, handler, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Pipeline is ready, press Ctrl+C to stop")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	cancel()
	log.Info(ctx, "Pipeline stopped")
}

// newJobHandler runs one video through the pipeline and drops the
// subtitle track, a self-contained player page and the transcript
// next to each other in the output directory.
func newJobHandler(cfg *config.Config, pipe pipeline.Pipeline, log logger.Logger, sourceLang, targetLang string) watcher.JobHandler {
	return func(ctx context.Context, videoPath string) error {
		name := filepath.Base(videoPath)
		base := strings.TrimSuffix(name, filepath.Ext(name))

		vttPath := filepath.Join(cfg.Paths.Output, base+".vtt")
		res, err := pipe.Run(ctx, pipeline.Job{
			VideoPath:    videoPath,
			SourceLang:   sourceLang,
			TargetLang:   targetLang,
			SubtitlePath: vttPath,
		})
		if err != nil {
			return err
		}

		if err := writePlayerPage(videoPath, vttPath, filepath.Join(cfg.Paths.Output, base+".html"), targetLang); err != nil {
			log.Warn(ctx, "Failed to write player page for %s: %v", name, err)
		}

		docxPath := filepath.Join(cfg.Paths.Output, base+".docx")
		if err := export.TranscriptDocx(base, res.Segments, docxPath); err != nil {
			log.Warn(ctx, "Failed to export transcript for %s: %v", name, err)
		}

		// Keep the original out of the watch directory so it is not
		// picked up again.
		archived := filepath.Join(cfg.Paths.Archived, name)
		if err := os.Rename(videoPath, archived); err != nil {
			log.Warn(ctx, "Failed to archive %s: %v", name, err)
		}

		log.Info(ctx, "Done: %s (%d cues, %s)", name, len(res.Segments), res.Elapsed)
		return nil
	}
}

func writePlayerPage(videoPath, vttPath, htmlPath, targetLang string) error {
	videoBytes, err := os.ReadFile(videoPath)
	if err != nil {
		return fmt.Errorf("read video: %w", err)
	}
	vttBytes, err := os.ReadFile(vttPath)
	if err != nil {
		return fmt.Errorf("read subtitles: %w", err)
	}

	fragment, err := player.Build(filepath.Base(videoPath), videoBytes, vttBytes, targetLang)
	if err != nil {
		return err
	}

	page := player.BuildPage(filepath.Base(videoPath), fragment)
	return os.WriteFile(htmlPath, []byte(page), 0644)
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
