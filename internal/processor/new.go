package processor

import (
	"sync"
	"time"

	"github.com/nguyentantai21042004/video-summary/internal/config"
	"github.com/nguyentantai21042004/video-summary/internal/fetcher"
	"github.com/nguyentantai21042004/video-summary/internal/logger"
	"github.com/nguyentantai21042004/video-summary/internal/summarizer"
	"github.com/nguyentantai21042004/video-summary/internal/transcriber"
	"github.com/nguyentantai21042004/video-summary/pkg/executor"
)

type implProcessor struct {
	ffmpegPath  string
	timeout     time.Duration
	executor    executor.Executor
	fetcher     fetcher.Fetcher
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	logger      logger.Logger

	// the audio file is a single shared path, one run at a time
	runs *semaphore

	mu                 sync.RWMutex
	minTranscriptChars int
}

// New creates a new Processor instance
func New(
	cfg *config.Config,
	exec executor.Executor,
	f fetcher.Fetcher,
	t transcriber.Transcriber,
	s summarizer.Summarizer,
	log logger.Logger,
) Processor {
	return &implProcessor{
		ffmpegPath:         cfg.FFmpeg.BinaryPath,
		timeout:            cfg.Pipeline.Timeout,
		executor:           exec,
		fetcher:            f,
		transcriber:        t,
		summarizer:         s,
		logger:             log,
		runs:               newSemaphore(1),
		minTranscriptChars: cfg.Summarizer.MinTranscriptChars,
	}
}
