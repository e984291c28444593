package transcriber

import "context"

// Transcriber turns a local audio file into English text, translating when the
// speech is in another language.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
