package transcriber

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// convertAudio re-encodes the downloaded track as 16kHz mono WAV, the input
// whisper.cpp expects.
func (w *implWhisperCPP) convertAudio(ctx context.Context, audioPath string) (string, error) {
	wavPath := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + "_16k.wav"

	w.logger.Info(ctx, "Converting audio for whisper: %s", audioPath)

	// -vn: drop any video stream
	// -ar 16000 -ac 1: 16kHz mono
	// -c:a pcm_s16le: 16-bit PCM
	// -y: overwrite the previous run's file
	args := []string{
		"-i", audioPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		wavPath,
	}

	if _, err := w.executor.Execute(ctx, w.ffmpegPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg convert audio: %w", err)
	}

	w.logger.Debug(ctx, "Audio converted: %s", wavPath)
	return wavPath, nil
}
