package config

import (
	"os"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid whisper and gemini config",
			config: Config{
				Transcriber: TranscriberConfig{
					Whisper: WhisperConfig{ModelPath: "models/ggml-base.bin"},
				},
				Secrets: SecretsConfig{GeminiAPIKeys: []string{"k1"}},
			},
			wantErr: false,
		},
		{
			name: "missing whisper model path",
			config: Config{
				Secrets: SecretsConfig{GeminiAPIKeys: []string{"k1"}},
			},
			wantErr: true,
		},
		{
			name: "gemini without keys",
			config: Config{
				Transcriber: TranscriberConfig{
					Whisper: WhisperConfig{ModelPath: "models/ggml-base.bin"},
				},
			},
			wantErr: true,
		},
		{
			name: "openai everywhere",
			config: Config{
				Transcriber: TranscriberConfig{Backend: BackendOpenAI},
				Summarizer:  SummarizerConfig{Backend: BackendOpenAI},
				Secrets:     SecretsConfig{OpenAIAPIKey: "sk-test"},
			},
			wantErr: false,
		},
		{
			name: "openai summarizer with local base url",
			config: Config{
				Transcriber: TranscriberConfig{
					Whisper: WhisperConfig{ModelPath: "models/ggml-base.bin"},
				},
				Summarizer: SummarizerConfig{
					Backend: BackendOpenAI,
					OpenAI:  OpenAIChatConfig{BaseURL: "http://localhost:11434/v1"},
				},
			},
			wantErr: false,
		},
		{
			name: "unknown transcriber backend",
			config: Config{
				Transcriber: TranscriberConfig{Backend: "vosk"},
				Secrets:     SecretsConfig{GeminiAPIKeys: []string{"k1"}},
			},
			wantErr: true,
		},
		{
			name: "min length above max length",
			config: Config{
				Transcriber: TranscriberConfig{
					Whisper: WhisperConfig{ModelPath: "models/ggml-base.bin"},
				},
				Summarizer: SummarizerConfig{MinLength: 200, MaxLength: 100},
				Secrets:    SecretsConfig{GeminiAPIKeys: []string{"k1"}},
			},
			wantErr: true,
		},
		{
			name: "negative chunk size",
			config: Config{
				Transcriber: TranscriberConfig{
					Whisper: WhisperConfig{ModelPath: "models/ggml-base.bin"},
				},
				Summarizer: SummarizerConfig{ChunkSize: -5},
				Secrets:    SecretsConfig{GeminiAPIKeys: []string{"k1"}},
			},
			wantErr: true,
		},
		{
			name: "negative min transcript chars",
			config: Config{
				Transcriber: TranscriberConfig{
					Whisper: WhisperConfig{ModelPath: "models/ggml-base.bin"},
				},
				Summarizer: SummarizerConfig{MinTranscriptChars: -1},
				Secrets:    SecretsConfig{GeminiAPIKeys: []string{"k1"}},
			},
			wantErr: true,
		},
		{
			name: "negative max length",
			config: Config{
				Transcriber: TranscriberConfig{
					Whisper: WhisperConfig{ModelPath: "models/ggml-base.bin"},
				},
				Summarizer: SummarizerConfig{MaxLength: -180},
				Secrets:    SecretsConfig{GeminiAPIKeys: []string{"k1"}},
			},
			wantErr: true,
		},
		{
			name: "write timeout equal to pipeline timeout",
			config: Config{
				Transcriber: TranscriberConfig{
					Whisper: WhisperConfig{ModelPath: "models/ggml-base.bin"},
				},
				Server:  ServerConfig{WriteTimeout: 30 * time.Minute},
				Secrets: SecretsConfig{GeminiAPIKeys: []string{"k1"}},
			},
			wantErr: true,
		},
		{
			name: "write timeout below explicit pipeline timeout",
			config: Config{
				Transcriber: TranscriberConfig{
					Whisper: WhisperConfig{ModelPath: "models/ggml-base.bin"},
				},
				Server:   ServerConfig{WriteTimeout: 5 * time.Minute},
				Pipeline: PipelineConfig{Timeout: 10 * time.Minute},
				Secrets:  SecretsConfig{GeminiAPIKeys: []string{"k1"}},
			},
			wantErr: true,
		},
		{
			name: "write timeout above pipeline timeout",
			config: Config{
				Transcriber: TranscriberConfig{
					Whisper: WhisperConfig{ModelPath: "models/ggml-base.bin"},
				},
				Server:   ServerConfig{WriteTimeout: 11 * time.Minute},
				Pipeline: PipelineConfig{Timeout: 10 * time.Minute},
				Secrets:  SecretsConfig{GeminiAPIKeys: []string{"k1"}},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Transcriber: TranscriberConfig{
			Whisper: WhisperConfig{ModelPath: "models/ggml-base.bin"},
		},
		Secrets: SecretsConfig{GeminiAPIKeys: []string{"k1"}},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Downloader.AudioFile != "audio.mp3" {
		t.Errorf("AudioFile = %v, want %v", cfg.Downloader.AudioFile, "audio.mp3")
	}
	if cfg.Summarizer.ChunkSize != 1000 {
		t.Errorf("ChunkSize = %v, want %v", cfg.Summarizer.ChunkSize, 1000)
	}
	if cfg.Summarizer.MinTranscriptChars != 200 {
		t.Errorf("MinTranscriptChars = %v, want %v", cfg.Summarizer.MinTranscriptChars, 200)
	}
	if cfg.Summarizer.MinLength != 60 || cfg.Summarizer.MaxLength != 180 {
		t.Errorf("bounds = %d..%d, want 60..180", cfg.Summarizer.MinLength, cfg.Summarizer.MaxLength)
	}
	if cfg.Transcriber.Backend != BackendWhisperCPP {
		t.Errorf("Transcriber.Backend = %v, want %v", cfg.Transcriber.Backend, BackendWhisperCPP)
	}
	if cfg.Summarizer.Backend != BackendGemini {
		t.Errorf("Summarizer.Backend = %v, want %v", cfg.Summarizer.Backend, BackendGemini)
	}
	if cfg.Pipeline.Timeout != 30*time.Minute {
		t.Errorf("Pipeline.Timeout = %v, want %v", cfg.Pipeline.Timeout, 30*time.Minute)
	}
	if cfg.Server.WriteTimeout <= cfg.Pipeline.Timeout {
		t.Errorf("Server.WriteTimeout = %v, want above Pipeline.Timeout %v", cfg.Server.WriteTimeout, cfg.Pipeline.Timeout)
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
server:
  addr: ":9000"
  write_timeout: 5m

downloader:
  audio_file: "work/audio.mp3"

pipeline:
  timeout: 4m

transcriber:
  backend: "whisper_cpp"
  whisper:
    binary_path: "./whisper-cli"
    model_path: "models/ggml-base.bin"
    threads: 8

summarizer:
  chunk_size: 800

logging:
  level: "debug"
  format: "json"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GEMINI_API_KEYS", "key-a,key-b")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":9000" {
		t.Errorf("Addr = %v, want %v", cfg.Server.Addr, ":9000")
	}
	if cfg.Server.WriteTimeout != 5*time.Minute {
		t.Errorf("WriteTimeout = %v, want %v", cfg.Server.WriteTimeout, 5*time.Minute)
	}
	if cfg.Downloader.AudioFile != "work/audio.mp3" {
		t.Errorf("AudioFile = %v, want %v", cfg.Downloader.AudioFile, "work/audio.mp3")
	}
	if cfg.Transcriber.Whisper.Threads != 8 {
		t.Errorf("Threads = %v, want %v", cfg.Transcriber.Whisper.Threads, 8)
	}
	if cfg.Summarizer.ChunkSize != 800 {
		t.Errorf("ChunkSize = %v, want %v", cfg.Summarizer.ChunkSize, 800)
	}
	if len(cfg.Secrets.GeminiAPIKeys) != 2 || cfg.Secrets.GeminiAPIKeys[1] != "key-b" {
		t.Errorf("GeminiAPIKeys = %v, want [key-a key-b]", cfg.Secrets.GeminiAPIKeys)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %v, want %v (env override)", cfg.Logging.Level, "warn")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %v, want %v", cfg.Logging.Format, "json")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
