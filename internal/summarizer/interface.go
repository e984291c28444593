package summarizer

import "context"

// Summarizer condenses a transcript chunk by chunk.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
	SetLimits(limits Limits)
}

// Model is a text generation backend.
type Model interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
	Name() string
}

// Limits bounds chunking and summary length.
// MinLength and MaxLength are in words.
type Limits struct {
	ChunkSize int
	MinLength int
	MaxLength int
}
