package config

import (
	"fmt"
	"time"
)

const (
	BackendWhisperCPP = "whisper_cpp"
	BackendOpenAI     = "openai"
	BackendGemini     = "gemini"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Downloader  DownloaderConfig  `yaml:"downloader"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Transcriber TranscriberConfig `yaml:"transcriber"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Logging     LoggingConfig     `yaml:"logging"`
	Secrets     SecretsConfig     `yaml:"-"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr" env:"SERVER_ADDR"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	Title        string        `yaml:"title"`
	Description  string        `yaml:"description"`
}

type DownloaderConfig struct {
	BinaryPath   string `yaml:"binary_path" env:"YTDLP_PATH"`
	AudioFile    string `yaml:"audio_file"`
	AudioFormat  string `yaml:"audio_format"`
	AudioQuality string `yaml:"audio_quality"`
	PlayerClient string `yaml:"player_client"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path" env:"FFMPEG_PATH"`
}

type TranscriberConfig struct {
	Backend string            `yaml:"backend" env:"TRANSCRIBER_BACKEND"`
	Whisper WhisperConfig     `yaml:"whisper"`
	OpenAI  OpenAIAudioConfig `yaml:"openai"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path" env:"WHISPER_PATH"`
	ModelPath  string `yaml:"model_path" env:"WHISPER_MODEL_PATH"`
	Threads    int    `yaml:"threads"`
}

type OpenAIAudioConfig struct {
	Model string `yaml:"model"`
}

type SummarizerConfig struct {
	Backend            string           `yaml:"backend" env:"SUMMARIZER_BACKEND"`
	ChunkSize          int              `yaml:"chunk_size"`
	MinTranscriptChars int              `yaml:"min_transcript_chars"`
	MinLength          int              `yaml:"min_length"`
	MaxLength          int              `yaml:"max_length"`
	MaxRetries         int              `yaml:"max_retries"`
	Gemini             GeminiConfig     `yaml:"gemini"`
	OpenAI             OpenAIChatConfig `yaml:"openai"`
}

type GeminiConfig struct {
	Model string `yaml:"model" env:"GEMINI_MODEL"`
}

type OpenAIChatConfig struct {
	Model   string `yaml:"model" env:"OPENAI_MODEL"`
	BaseURL string `yaml:"base_url" env:"OPENAI_BASE_URL"`
}

type PipelineConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// SecretsConfig is never read from YAML.
type SecretsConfig struct {
	GeminiAPIKeys []string `env:"GEMINI_API_KEYS" env-separator:","`
	OpenAIAPIKey  string   `env:"OPENAI_API_KEY"`
}

func (c *Config) Validate() error {
	if c.Transcriber.Backend == "" {
		c.Transcriber.Backend = BackendWhisperCPP
	}
	if c.Summarizer.Backend == "" {
		c.Summarizer.Backend = BackendGemini
	}

	switch c.Transcriber.Backend {
	case BackendWhisperCPP:
		if c.Transcriber.Whisper.ModelPath == "" {
			return fmt.Errorf("transcriber.whisper.model_path is required")
		}
		if c.Transcriber.Whisper.BinaryPath == "" {
			c.Transcriber.Whisper.BinaryPath = "whisper-cli"
		}
	case BackendOpenAI:
		if c.Secrets.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for transcriber.backend=openai")
		}
	default:
		return fmt.Errorf("transcriber.backend %q is not supported", c.Transcriber.Backend)
	}

	switch c.Summarizer.Backend {
	case BackendGemini:
		if len(c.Secrets.GeminiAPIKeys) == 0 {
			return fmt.Errorf("GEMINI_API_KEYS is required for summarizer.backend=gemini")
		}
	case BackendOpenAI:
		if c.Secrets.OpenAIAPIKey == "" && c.Summarizer.OpenAI.BaseURL == "" {
			return fmt.Errorf("OPENAI_API_KEY or summarizer.openai.base_url is required for summarizer.backend=openai")
		}
	default:
		return fmt.Errorf("summarizer.backend %q is not supported", c.Summarizer.Backend)
	}

	if c.Summarizer.MinLength > 0 && c.Summarizer.MaxLength > 0 && c.Summarizer.MinLength > c.Summarizer.MaxLength {
		return fmt.Errorf("summarizer.min_length must not exceed summarizer.max_length")
	}
	if c.Summarizer.ChunkSize < 0 {
		return fmt.Errorf("summarizer.chunk_size must be positive")
	}
	if c.Summarizer.MinTranscriptChars < 0 {
		return fmt.Errorf("summarizer.min_transcript_chars must not be negative")
	}
	if c.Summarizer.MinLength < 0 || c.Summarizer.MaxLength < 0 {
		return fmt.Errorf("summarizer.min_length and summarizer.max_length must not be negative")
	}
	if c.Pipeline.Timeout < 0 {
		return fmt.Errorf("pipeline.timeout must not be negative")
	}

	if c.Pipeline.Timeout == 0 {
		c.Pipeline.Timeout = 30 * time.Minute
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":7860"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	// the response is written only after the run ends
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = c.Pipeline.Timeout + time.Minute
	}
	if c.Server.WriteTimeout <= c.Pipeline.Timeout {
		return fmt.Errorf("server.write_timeout (%s) must exceed pipeline.timeout (%s)", c.Server.WriteTimeout, c.Pipeline.Timeout)
	}
	if c.Server.Title == "" {
		c.Server.Title = "YouTube Video Summarizer"
	}
	if c.Server.Description == "" {
		c.Server.Description = "Summarize any video: speech is transcribed, translated to English and condensed."
	}
	if c.Downloader.BinaryPath == "" {
		c.Downloader.BinaryPath = "yt-dlp"
	}
	if c.Downloader.AudioFile == "" {
		c.Downloader.AudioFile = "audio.mp3"
	}
	if c.Downloader.AudioFormat == "" {
		c.Downloader.AudioFormat = "mp3"
	}
	if c.Downloader.AudioQuality == "" {
		c.Downloader.AudioQuality = "192K"
	}
	if c.Downloader.PlayerClient == "" {
		c.Downloader.PlayerClient = "android"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.Transcriber.Whisper.Threads == 0 {
		c.Transcriber.Whisper.Threads = 4
	}
	if c.Transcriber.OpenAI.Model == "" {
		c.Transcriber.OpenAI.Model = "whisper-1"
	}
	if c.Summarizer.ChunkSize == 0 {
		c.Summarizer.ChunkSize = 1000
	}
	if c.Summarizer.MinTranscriptChars == 0 {
		c.Summarizer.MinTranscriptChars = 200
	}
	if c.Summarizer.MinLength == 0 {
		c.Summarizer.MinLength = 60
	}
	if c.Summarizer.MaxLength == 0 {
		c.Summarizer.MaxLength = 180
	}
	if c.Summarizer.MaxRetries == 0 {
		c.Summarizer.MaxRetries = 3
	}
	if c.Summarizer.Gemini.Model == "" {
		c.Summarizer.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Summarizer.OpenAI.Model == "" {
		c.Summarizer.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}
