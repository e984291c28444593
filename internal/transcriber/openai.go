package transcriber

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Transcribe uploads audioPath to the translations endpoint, which always answers in English.
func (o *implOpenAI) Transcribe(ctx context.Context, audioPath string) (string, error) {
	o.logger.Info(ctx, "Starting OpenAI translation (%s): %s", o.model, audioPath)

	resp, err := o.client.CreateTranslation(ctx, openai.AudioRequest{
		Model:       o.model,
		FilePath:    audioPath,
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("openai translation: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	o.logger.Info(ctx, "Transcription completed: %d characters", len([]rune(text)))
	return text, nil
}
