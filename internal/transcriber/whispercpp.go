package transcriber

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Transcribe runs whisper.cpp in translate mode over audioPath.
func (w *implWhisperCPP) Transcribe(ctx context.Context, audioPath string) (string, error) {
	wavPath, err := w.convertAudio(ctx, audioPath)
	if err != nil {
		return "", err
	}
	defer w.cleanupTempFile(ctx, wavPath)

	// whisper runs next to the audio with relative file names and appends
	// .txt to the output prefix
	workDir := filepath.Dir(wavPath)
	outputPrefix := strings.TrimSuffix(filepath.Base(wavPath), filepath.Ext(wavPath))
	txtPath := filepath.Join(workDir, outputPrefix+".txt")

	binaryPath, err := resolveBinary(w.whisper.BinaryPath)
	if err != nil {
		return "", err
	}
	modelPath, err := filepath.Abs(w.whisper.ModelPath)
	if err != nil {
		return "", fmt.Errorf("resolve model path: %w", err)
	}

	w.logger.Info(ctx, "Starting transcription with %d threads: %s", w.whisper.Threads, wavPath)

	// -tr: translate to English
	// -l auto: detect the spoken language
	// -otxt: plain text output, one segment per line
	// -np: no progress prints on stdout
	args := []string{
		"-m", modelPath,
		"-f", filepath.Base(wavPath),
		"-tr",
		"-l", "auto",
		"-t", strconv.Itoa(w.whisper.Threads),
		"-otxt",
		"-np",
		"--output-file", outputPrefix,
	}

	if _, err := w.executor.ExecuteInDir(ctx, workDir, binaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}
	defer w.cleanupTempFile(ctx, txtPath)

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}

	text := joinSegments(string(data))
	w.logger.Info(ctx, "Transcription completed: %d characters", len([]rune(text)))
	return text, nil
}

// joinSegments flattens whisper's one-segment-per-line output into a single paragraph.
func joinSegments(raw string) string {
	lines := strings.Split(raw, "\n")
	segments := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	return strings.Join(segments, " ")
}

// resolveBinary anchors a relative binary path to the current directory.
// Bare command names are left for PATH lookup.
func resolveBinary(name string) (string, error) {
	if filepath.IsAbs(name) || !strings.ContainsRune(name, filepath.Separator) {
		return name, nil
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", fmt.Errorf("resolve whisper binary: %w", err)
	}
	return abs, nil
}

func (w *implWhisperCPP) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		w.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		w.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}
