package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const summaryPrompt = `You summarize spoken video transcripts. Write an abstractive summary of the transcript excerpt below in English.

Requirements:
- Between %d and %d words
- Plain prose, no headings, no bullet points
- Only information present in the excerpt
- Reply with the summary text only

Transcript excerpt:
---
%s
---`

// Summarize chunks transcript, summarizes every chunk in order and joins the
// partial summaries with a single space.
func (s *implSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	limits := s.currentLimits()
	chunks := Chunk(transcript, limits.ChunkSize)

	s.logger.Info(ctx, "Summarizing %d chunk(s) with %s", len(chunks), s.model.Name())
	startTime := time.Now()

	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		s.logger.Debug(ctx, "[%d/%d] Summarizing chunk (%d characters)", i+1, len(chunks), len([]rune(chunk)))

		summary, err := s.summarizeChunk(ctx, chunk, limits)
		if err != nil {
			return "", fmt.Errorf("summarize chunk %d/%d: %w", i+1, len(chunks), err)
		}
		summaries = append(summaries, summary)
	}

	s.logger.Info(ctx, "Summary complete in %s", time.Since(startTime))
	return strings.Join(summaries, " "), nil
}

func (s *implSummarizer) SetLimits(limits Limits) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limits = limits
}

func (s *implSummarizer) currentLimits() Limits {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.limits
}

// summarizeChunk calls the model, retrying transient failures with exponential backoff.
func (s *implSummarizer) summarizeChunk(ctx context.Context, chunk string, limits Limits) (string, error) {
	prompt := buildPrompt(chunk, limits)
	maxTokens := 2 * limits.MaxLength

	var summary string
	operation := func() error {
		out, err := s.model.Generate(ctx, prompt, maxTokens)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return backoff.Permanent(err)
			}
			return err
		}
		out = strings.TrimSpace(out)
		if out == "" {
			return fmt.Errorf("empty response from %s", s.model.Name())
		}
		summary = out
		return nil
	}

	notify := func(err error, wait time.Duration) {
		s.logger.Warn(ctx, "Summary attempt failed, retrying in %s: %v", wait, err)
	}

	retries := s.maxRetries
	if retries < 0 {
		retries = 0
	}
	b := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), uint64(retries)), ctx)
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		return "", err
	}

	return summary, nil
}

func buildPrompt(chunk string, limits Limits) string {
	return fmt.Sprintf(summaryPrompt, limits.MinLength, limits.MaxLength, chunk)
}
