package transcriber

import (
	"fmt"

	"github.com/nguyentantai21042004/video-summary/internal/config"
	"github.com/nguyentantai21042004/video-summary/internal/logger"
	"github.com/nguyentantai21042004/video-summary/pkg/executor"
	openai "github.com/sashabaranov/go-openai"
)

type implWhisperCPP struct {
	whisper    config.WhisperConfig
	ffmpegPath string
	executor   executor.Executor
	logger     logger.Logger
}

type implOpenAI struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

// New picks the backend named by transcriber.backend.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	switch cfg.Transcriber.Backend {
	case config.BackendWhisperCPP:
		return NewWhisperCPP(cfg.Transcriber.Whisper, cfg.FFmpeg.BinaryPath, exec, log), nil
	case config.BackendOpenAI:
		return NewOpenAI(openai.NewClient(cfg.Secrets.OpenAIAPIKey), cfg.Transcriber.OpenAI.Model, log), nil
	default:
		return nil, fmt.Errorf("unknown transcriber backend %q", cfg.Transcriber.Backend)
	}
}

// NewWhisperCPP creates a Transcriber running the whisper.cpp CLI locally.
func NewWhisperCPP(whisper config.WhisperConfig, ffmpegPath string, exec executor.Executor, log logger.Logger) Transcriber {
	return &implWhisperCPP{
		whisper:    whisper,
		ffmpegPath: ffmpegPath,
		executor:   exec,
		logger:     log,
	}
}

// NewOpenAI creates a Transcriber using the OpenAI audio translations endpoint.
func NewOpenAI(client *openai.Client, model string, log logger.Logger) Transcriber {
	return &implOpenAI{
		client: client,
		model:  model,
		logger: log,
	}
}
