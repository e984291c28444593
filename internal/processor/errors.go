package processor

import (
	"errors"
	"fmt"
)

var (
	ErrToolMissing     = errors.New("ffmpeg not installed")
	ErrDownloadFailed  = errors.New("audio download failed")
	ErrNotEnoughSpeech = errors.New("not enough speech detected")
)

// FailureMarker prefixes every failure message shown to users.
const FailureMarker = "❌"

const (
	msgToolMissing     = FailureMarker + " FFmpeg not installed. Please install FFmpeg and restart."
	msgDownloadFailed  = FailureMarker + " Audio download failed. Try another video."
	msgNotEnoughSpeech = FailureMarker + " Not enough speech detected in this video."
)

// Message renders err as the human-readable string shown in the UI.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrToolMissing):
		return msgToolMissing
	case errors.Is(err, ErrDownloadFailed):
		return msgDownloadFailed
	case errors.Is(err, ErrNotEnoughSpeech):
		return msgNotEnoughSpeech
	default:
		return fmt.Sprintf("%s ERROR: %v", FailureMarker, err)
	}
}
