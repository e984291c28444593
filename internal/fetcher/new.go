package fetcher

import (
	"github.com/nguyentantai21042004/video-summary/internal/config"
	"github.com/nguyentantai21042004/video-summary/internal/logger"
	"github.com/nguyentantai21042004/video-summary/pkg/executor"
)

type implFetcher struct {
	downloader config.DownloaderConfig
	ffmpegPath string
	executor   executor.Executor
	logger     logger.Logger
}

// New creates a yt-dlp backed Fetcher.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Fetcher {
	return &implFetcher{
		downloader: cfg.Downloader,
		ffmpegPath: cfg.FFmpeg.BinaryPath,
		executor:   exec,
		logger:     log,
	}
}
