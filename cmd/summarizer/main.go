package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nguyentantai21042004/video-summary/internal/config"
	"github.com/nguyentantai21042004/video-summary/internal/fetcher"
	"github.com/nguyentantai21042004/video-summary/internal/logger"
	"github.com/nguyentantai21042004/video-summary/internal/processor"
	"github.com/nguyentantai21042004/video-summary/internal/summarizer"
	"github.com/nguyentantai21042004/video-summary/internal/transcriber"
	"github.com/nguyentantai21042004/video-summary/internal/watcher"
	"github.com/nguyentantai21042004/video-summary/internal/web"
	"github.com/nguyentantai21042004/video-summary/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Video Summary")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Configuration loaded from %s", *configPath)

	exec := executor.New()
	f := fetcher.New(cfg, exec, log)

	t, err := transcriber.New(cfg, exec, log)
	if err != nil {
		log.Error(ctx, "Failed to create transcriber: %v", err)
		os.Exit(1)
	}

	model, err := summarizer.NewModel(cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to create summarizer model: %v", err)
		os.Exit(1)
	}
	s := summarizer.New(model, summarizer.LimitsFromConfig(cfg.Summarizer), cfg.Summarizer.MaxRetries, log)

	proc := processor.New(cfg, exec, f, t, s, log)
	server := web.New(cfg.Server, proc, log)

	w, err := watcher.New(*configPath, func(ctx context.Context, filePath string) error {
		next, err := config.Load(filePath)
		if err != nil {
			return fmt.Errorf("reload config, keeping previous: %w", err)
		}
		proc.Reload(next)
		log.Info(ctx, "Configuration reloaded: chunk_size=%d, min_length=%d, max_length=%d",
			next.Summarizer.ChunkSize, next.Summarizer.MinLength, next.Summarizer.MaxLength)
		return nil
	}, log)
	if err != nil {
		log.Warn(ctx, "Config hot reload disabled: %v", err)
	} else {
		defer w.Stop()
		go func() {
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error(ctx, "Config watcher error: %v", err)
			}
		}()
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Listening on %s", cfg.Server.Addr)
	log.Info(ctx, "  - Downloader: %s (%s %s)", cfg.Downloader.BinaryPath, cfg.Downloader.AudioFormat, cfg.Downloader.AudioQuality)
	log.Info(ctx, "  - Transcriber: %s", cfg.Transcriber.Backend)
	log.Info(ctx, "  - Summarizer: %s (%s)", cfg.Summarizer.Backend, model.Name())
	log.Info(ctx, "  - Chunk size: %d", cfg.Summarizer.ChunkSize)
	log.Info(ctx, "")
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "Server error: %v", err)
		os.Exit(1)
	}

	log.Info(context.Background(), "Video Summary stopped")
}
