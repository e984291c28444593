package summarizer

import (
	"fmt"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/nguyentantai21042004/video-summary/internal/config"
	"github.com/nguyentantai21042004/video-summary/internal/logger"
	openai "github.com/sashabaranov/go-openai"
)

type implSummarizer struct {
	model      Model
	maxRetries int
	newBackOff func() backoff.BackOff
	logger     logger.Logger

	mu     sync.RWMutex
	limits Limits
}

// New creates a Summarizer that feeds each chunk through model.
func New(model Model, limits Limits, maxRetries int, log logger.Logger) Summarizer {
	return &implSummarizer{
		model:      model,
		maxRetries: maxRetries,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		logger:     log,
		limits:     limits,
	}
}

// LimitsFromConfig extracts the summarizer limits from cfg.
func LimitsFromConfig(cfg config.SummarizerConfig) Limits {
	return Limits{
		ChunkSize: cfg.ChunkSize,
		MinLength: cfg.MinLength,
		MaxLength: cfg.MaxLength,
	}
}

// NewModel builds the backend named by summarizer.backend.
func NewModel(cfg *config.Config, log logger.Logger) (Model, error) {
	switch cfg.Summarizer.Backend {
	case config.BackendGemini:
		return NewGemini(cfg.Secrets.GeminiAPIKeys, cfg.Summarizer.Gemini.Model, log), nil
	case config.BackendOpenAI:
		clientCfg := openai.DefaultConfig(cfg.Secrets.OpenAIAPIKey)
		if cfg.Summarizer.OpenAI.BaseURL != "" {
			clientCfg.BaseURL = cfg.Summarizer.OpenAI.BaseURL
		}
		return NewOpenAI(openai.NewClientWithConfig(clientCfg), cfg.Summarizer.OpenAI.Model), nil
	default:
		return nil, fmt.Errorf("unknown summarizer backend %q", cfg.Summarizer.Backend)
	}
}
