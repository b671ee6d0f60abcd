package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"pregunta":"¿2+2?"}`)},
		MockResponse{Content: json.RawMessage(`{"pregunta":"¿3+3?"}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	if string(resp1.Content) != `{"pregunta":"¿2+2?"}` {
		t.Errorf("first response = %s", resp1.Content)
	}

	resp2, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if string(resp2.Content) != `{"pregunta":"¿3+3?"}` {
		t.Errorf("second response = %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()

	_, err := mock.Generate(context.Background(), Request{})

	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
	)

	req := Request{
		System:   "Eres un tutor de matemáticas.",
		Messages: []Message{{Role: RoleUser, Content: "Genera un ítem."}},
	}
	if _, err := mock.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("CallCount = %d, want 1", mock.CallCount())
	}
	if mock.Calls[0].System != req.System {
		t.Errorf("recorded system = %q", mock.Calls[0].System)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	wantErr := &ErrRateLimit{}
	mock := NewMockProvider(MockResponse{Err: wantErr})

	_, err := mock.Generate(context.Background(), Request{})

	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Errorf("expected ErrRateLimit, got %v", err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()

	if got := PurposeFrom(ctx); got != "unknown" {
		t.Errorf("PurposeFrom(empty) = %q, want \"unknown\"", got)
	}

	ctx = WithPurpose(ctx, PurposeItemGen)
	if got := PurposeFrom(ctx); got != PurposeItemGen {
		t.Errorf("PurposeFrom = %q, want \"item-gen\"", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "k"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "k"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "llama-local"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SABI_LLM_PROVIDER", "openai")
	t.Setenv("SABI_OPENAI_API_KEY", "sk-test")
	t.Setenv("SABI_OPENAI_BASE_URL", "https://openrouter.ai/api/v1")

	cfg := ConfigFromEnv()

	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.BaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("BaseURL = %q", cfg.OpenAI.BaseURL)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("Model default = %q", cfg.OpenAI.Model)
	}
}
