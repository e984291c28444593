package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Fetch downloads the audio of videoURL into the configured audio file,
// replacing whatever a previous run left there.
func (f *implFetcher) Fetch(ctx context.Context, videoURL string) (string, error) {
	videoURL = strings.TrimSpace(videoURL)
	if err := validateURL(videoURL); err != nil {
		return "", err
	}

	audioPath := f.downloader.AudioFile
	if dir := filepath.Dir(audioPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create audio dir: %w", err)
		}
	}

	if err := removeIfExists(audioPath); err != nil {
		return "", fmt.Errorf("remove previous audio: %w", err)
	}

	f.logger.Info(ctx, "Downloading audio: %s -> %s", videoURL, audioPath)

	if _, err := f.executor.Execute(ctx, f.downloader.BinaryPath, f.args(videoURL)...); err != nil {
		return "", fmt.Errorf("yt-dlp download: %w", err)
	}

	if _, err := os.Stat(audioPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoAudio
		}
		return "", fmt.Errorf("stat audio: %w", err)
	}

	f.logger.Info(ctx, "Audio downloaded: %s", audioPath)
	return audioPath, nil
}

// args builds the yt-dlp command line.
// -f bestaudio/best: best audio-only stream, full file as fallback
// -x / --audio-format / --audio-quality: transcode through ffmpeg
// -o <stem>.%(ext)s: the post-processor renames to <stem>.<audio_format>
// --: the URL can never be read as an option
func (f *implFetcher) args(videoURL string) []string {
	audioPath := f.downloader.AudioFile
	template := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".%(ext)s"

	args := []string{
		"-f", "bestaudio/best",
		"-o", template,
		"--no-playlist",
		"--quiet",
		"--no-warnings",
		"--geo-bypass",
		"-x",
		"--audio-format", f.downloader.AudioFormat,
		"--audio-quality", f.downloader.AudioQuality,
		"--extractor-args", "youtube:player_client=" + f.downloader.PlayerClient,
	}

	if f.ffmpegPath != "" && f.ffmpegPath != "ffmpeg" {
		args = append(args, "--ffmpeg-location", f.ffmpegPath)
	}

	return append(args, "--", videoURL)
}

func validateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("video URL is empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse video URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("video URL must be http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("video URL has no host: %q", raw)
	}

	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
