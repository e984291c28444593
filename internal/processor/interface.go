package processor

import (
	"context"

	"github.com/nguyentantai21042004/video-summary/internal/config"
)

// Processor runs the fetch -> transcribe -> chunk -> summarize chain for one URL.
type Processor interface {
	// Process returns the summary or the first failure.
	Process(ctx context.Context, videoURL string) (string, error)
	// Summarize is Process rendered for display: the summary, or a failure message.
	Summarize(ctx context.Context, videoURL string) string
	// Reload applies runtime-tunable settings from cfg.
	Reload(cfg *config.Config)
}
