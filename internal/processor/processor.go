package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nguyentantai21042004/video-summary/internal/config"
	"github.com/nguyentantai21042004/video-summary/internal/fetcher"
	"github.com/nguyentantai21042004/video-summary/internal/summarizer"
)

// Process orchestrates the entire summarization pipeline for one video URL.
func (p *implProcessor) Process(ctx context.Context, videoURL string) (string, error) {
	// the timeout covers queueing too, so a run always ends inside the
	// server's write window
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if p.runs.inUse() > 0 {
		p.logger.Info(ctx, "Another summary is running, waiting: %s", videoURL)
	}
	if err := p.runs.acquire(ctx); err != nil {
		return "", fmt.Errorf("wait for previous run: %w", err)
	}
	defer p.runs.release()

	startTime := time.Now()
	p.logger.Info(ctx, "Starting video summary: %s", videoURL)

	// Step 1: ffmpeg must exist for the audio post-processing
	if err := p.checkFFmpeg(ctx); err != nil {
		return "", err
	}

	// Step 2: download audio
	audioPath, err := p.fetcher.Fetch(ctx, videoURL)
	if err != nil {
		if errors.Is(err, fetcher.ErrNoAudio) {
			return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
		}
		return "", fmt.Errorf("fetch audio: %w", err)
	}

	// Step 3: transcribe and translate to English
	transcript, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	transcript = strings.TrimSpace(transcript)

	// Step 4: reject near-silent videos
	minChars := p.minChars()
	if n := utf8.RuneCountInString(transcript); n < minChars {
		p.logger.Warn(ctx, "Transcript too short: %d characters (minimum %d)", n, minChars)
		return "", ErrNotEnoughSpeech
	}

	// Step 5: chunk and summarize
	summary, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	p.logger.Info(ctx, "Video summary completed in %s (%d transcript characters)",
		time.Since(startTime), utf8.RuneCountInString(transcript))
	return summary, nil
}

// Summarize runs Process and renders any failure as a display string.
func (p *implProcessor) Summarize(ctx context.Context, videoURL string) string {
	summary, err := p.Process(ctx, videoURL)
	if err != nil {
		p.logger.Error(ctx, "Failed to summarize %s: %v", videoURL, err)
		return Message(err)
	}
	return summary
}

func (p *implProcessor) Reload(cfg *config.Config) {
	p.mu.Lock()
	p.minTranscriptChars = cfg.Summarizer.MinTranscriptChars
	p.mu.Unlock()

	p.summarizer.SetLimits(summarizer.LimitsFromConfig(cfg.Summarizer))
}

func (p *implProcessor) minChars() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.minTranscriptChars
}
