package fetcher

import (
	"context"
	"errors"
)

// ErrNoAudio is returned when the download tool exits cleanly but no audio file exists afterwards.
var ErrNoAudio = errors.New("audio file not produced")

// Fetcher pulls the audio track of a remote video into a local file.
type Fetcher interface {
	Fetch(ctx context.Context, videoURL string) (string, error)
}
