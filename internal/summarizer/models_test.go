package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/video-summary/internal/config"
	"github.com/nguyentantai21042004/video-summary/internal/logger"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

func TestOpenAIGenerate(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"A short summary."},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	clientCfg := openai.DefaultConfig("sk-test")
	clientCfg.BaseURL = srv.URL + "/v1"
	m := NewOpenAI(openai.NewClientWithConfig(clientCfg), "gpt-4o-mini")

	out, err := m.Generate(context.Background(), "summarize this", 360)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out != "A short summary." {
		t.Errorf("Generate() = %q, want %q", out, "A short summary.")
	}
	if got.Model != "gpt-4o-mini" {
		t.Errorf("model = %v, want %v", got.Model, "gpt-4o-mini")
	}
	if got.MaxTokens != 360 {
		t.Errorf("max_tokens = %v, want %v", got.MaxTokens, 360)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "summarize this" {
		t.Errorf("messages = %+v, want the prompt as a single user message", got.Messages)
	}
	if m.Name() != "openai/gpt-4o-mini" {
		t.Errorf("Name() = %v, want %v", m.Name(), "openai/gpt-4o-mini")
	}
}

func TestOpenAIGenerateNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	clientCfg := openai.DefaultConfig("sk-test")
	clientCfg.BaseURL = srv.URL + "/v1"
	m := NewOpenAI(openai.NewClientWithConfig(clientCfg), "gpt-4o-mini")

	if _, err := m.Generate(context.Background(), "p", 10); err == nil {
		t.Error("Generate() should fail without choices")
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"status code", errors.New("Error 429, Message: slow down"), true},
		{"quota", errors.New("you exceeded your current quota"), true},
		{"status name", errors.New("RESOURCE_EXHAUSTED"), true},
		{"other", errors.New("Error 500, Message: internal"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRateLimited(tt.err); got != tt.want {
				t.Errorf("isRateLimited() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateKey(t *testing.T) {
	g := NewGemini([]string{"a", "b", "c"}, "gemini-2.5-flash", logger.New("error", "text")).(*implGemini)

	g.rotateKey(0)
	if i, k := g.key(); i != 1 || k != "b" {
		t.Errorf("key() = %d %s, want 1 b", i, k)
	}

	// stale rotation from a caller that still held key 0
	g.rotateKey(0)
	if i, _ := g.key(); i != 1 {
		t.Errorf("key() = %d, want 1", i)
	}

	g.rotateKey(1)
	g.rotateKey(2)
	if i, k := g.key(); i != 0 || k != "a" {
		t.Errorf("key() = %d %s, want wrap to 0 a", i, k)
	}
}

func TestGeminiNoKeys(t *testing.T) {
	g := NewGemini(nil, "gemini-2.5-flash", logger.New("error", "text"))
	if _, err := g.Generate(context.Background(), "p", 10); err == nil {
		t.Error("Generate() should fail without API keys")
	}
}

// geminiServer answers generateContent calls per API key: "limited" gets a
// 429, every other key gets reply.
func geminiServer(t *testing.T, reply string) (*httptest.Server, *[]string, *[]string) {
	t.Helper()
	var mu sync.Mutex
	var keys, bodies []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		key := r.Header.Get("x-goog-api-key")

		mu.Lock()
		keys = append(keys, key)
		bodies = append(bodies, string(body))
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if key == "limited" {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
			return
		}
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, &keys, &bodies
}

func newTestGemini(keys []string, baseURL string) *implGemini {
	g := NewGemini(keys, "gemini-2.5-flash", logger.New("error", "text")).(*implGemini)
	g.baseURL = baseURL
	return g
}

func TestGeminiGenerate(t *testing.T) {
	srv, keys, bodies := geminiServer(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"A short summary."}]},"finishReason":"STOP"}]}`)

	g := newTestGemini([]string{"limited", "good"}, srv.URL)
	out, err := g.Generate(context.Background(), "summarize this", 360)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out != "A short summary." {
		t.Errorf("Generate() = %q, want %q", out, "A short summary.")
	}

	if len(*keys) != 2 || (*keys)[0] != "limited" || (*keys)[1] != "good" {
		t.Errorf("keys used = %v, want [limited good]", *keys)
	}
	if i, _ := g.key(); i != 1 {
		t.Errorf("key() = %d, want 1 after rotation", i)
	}

	body := (*bodies)[1]
	for _, want := range []string{`"maxOutputTokens":360`, `"thinkingBudget":0`, "summarize this"} {
		if !strings.Contains(body, want) {
			t.Errorf("request body %s missing %s", body, want)
		}
	}
}

func TestGeminiGenerateErrors(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		reply string
	}{
		{"every key rate limited", []string{"limited", "limited"}, ""},
		{"no text parts", []string{"good"}, `{"candidates":[{"content":{"role":"model","parts":[]},"finishReason":"MAX_TOKENS"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _ := geminiServer(t, tt.reply)
			if _, err := newTestGemini(tt.keys, srv.URL).Generate(context.Background(), "p", 10); err == nil {
				t.Error("Generate() should fail")
			}
		})
	}
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name   string
		result *genai.GenerateContentResponse
		want   string
	}{
		{"nil", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{
			"joined parts",
			&genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []*genai.Part{{Text: "Hello "}, {Text: "world"}}},
				}},
			},
			"Hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := responseText(tt.result); got != tt.want {
				t.Errorf("responseText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewModel(t *testing.T) {
	log := logger.New("error", "text")

	gemini, err := NewModel(&config.Config{
		Summarizer: config.SummarizerConfig{Backend: config.BackendGemini, Gemini: config.GeminiConfig{Model: "gemini-2.5-flash"}},
		Secrets:    config.SecretsConfig{GeminiAPIKeys: []string{"k"}},
	}, log)
	if err != nil {
		t.Fatalf("NewModel(gemini) error = %v", err)
	}
	if gemini.Name() != "gemini/gemini-2.5-flash" {
		t.Errorf("Name() = %v, want %v", gemini.Name(), "gemini/gemini-2.5-flash")
	}

	local, err := NewModel(&config.Config{
		Summarizer: config.SummarizerConfig{
			Backend: config.BackendOpenAI,
			OpenAI:  config.OpenAIChatConfig{Model: "llama3", BaseURL: "http://localhost:11434/v1"},
		},
	}, log)
	if err != nil {
		t.Fatalf("NewModel(openai) error = %v", err)
	}
	if local.Name() != "openai/llama3" {
		t.Errorf("Name() = %v, want %v", local.Name(), "openai/llama3")
	}

	if _, err := NewModel(&config.Config{Summarizer: config.SummarizerConfig{Backend: "bart"}}, log); err == nil {
		t.Error("NewModel() should reject an unknown backend")
	}
}
