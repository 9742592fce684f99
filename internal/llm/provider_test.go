package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: "first answer", Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Text: "second answer"},
	)

	resp1, err := mock.Generate(context.Background(), UserPrompt("first"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Text != "first answer" {
		t.Fatalf("expected first answer, got %q", resp1.Text)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), UserPrompt("second"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text != "second answer" {
		t.Fatalf("expected second answer, got %q", resp2.Text)
	}
}

func TestMockProvider_EmptyQueueAnswersOffline(t *testing.T) {
	mock := NewMockProvider()
	resp, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != MockOfflineText {
		t.Fatalf("expected offline text, got %q", resp.Text)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok"})

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	if s := SessionFrom(ctx); s != "" {
		t.Fatalf("expected empty session, got %q", s)
	}

	ctx = WithSession(WithPurpose(ctx, "explain"), "sess-1")
	if p := PurposeFrom(ctx); p != "explain" {
		t.Fatalf("expected 'explain', got %q", p)
	}
	if s := SessionFrom(ctx); s != "sess-1" {
		t.Fatalf("expected 'sess-1', got %q", s)
	}
}

func TestErrorMessage(t *testing.T) {
	apiErr := &APIError{Provider: "gemini", StatusCode: 429, Message: "quota exceeded"}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("dial tcp: refused"), "dial tcp: refused"},
		{"api error", apiErr, "quota exceeded"},
		{"wrapped api error", &ErrRateLimit{Err: apiErr}, "quota exceeded"},
		{"fmt wrapped", fmt.Errorf("explain: %w", &ErrProviderUnavailable{Err: apiErr}), "quota exceeded"},
		{"api error without message", &APIError{Provider: "openai", StatusCode: 400}, "openai API error (HTTP 400): "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.want {
				t.Fatalf("ErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	var rl *ErrRateLimit
	if !errors.As(classify(&APIError{StatusCode: 429}), &rl) {
		t.Fatal("429 should be a rate limit")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(classify(&APIError{StatusCode: 503}), &unavail) {
		t.Fatal("503 should be unavailable")
	}
	var apiErr *APIError
	err := classify(&APIError{StatusCode: 403})
	if errors.As(err, &rl) || errors.As(err, &unavail) || !errors.As(err, &apiErr) {
		t.Fatalf("403 should stay a plain API error, got %T", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "gemini without key",
			cfg:     Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "gemini with key",
			cfg:     Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "AIza-test"}},
			wantErr: false,
		},
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_KeyAndModelFollowProvider(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "gemini" {
		t.Fatalf("default provider = %q", cfg.Provider)
	}
	cfg.SetAPIKey("k1")
	cfg.SetModel("gemini-2.5-flash")
	if cfg.Gemini.APIKey != "k1" || cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Fatalf("gemini config not updated: %+v", cfg.Gemini)
	}

	cfg.Provider = "openai"
	if cfg.APIKey() != "" {
		t.Fatalf("openai key should be empty, got %q", cfg.APIKey())
	}
	cfg.SetAPIKey("k2")
	if cfg.OpenAI.APIKey != "k2" {
		t.Fatalf("openai key = %q", cfg.OpenAI.APIKey)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MEDTRIX_LLM_PROVIDER", "openrouter")
	t.Setenv("MEDTRIX_OPENROUTER_API_KEY", "sk-or")
	t.Setenv("MEDTRIX_OPENROUTER_MODEL", "openai/gpt-4o-mini")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openrouter" || cfg.APIKey() != "sk-or" || cfg.OpenRouter.Model != "openai/gpt-4o-mini" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := p.Generate(context.Background(), UserPrompt("hi"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Text != MockOfflineText {
		t.Fatalf("unexpected text %q", resp.Text)
	}
}

func TestNewProvider_Errors(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "nope"}, nil, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if _, err := NewProvider(context.Background(), Config{Provider: "gemini"}, nil, nil); err == nil {
		t.Fatal("expected error for missing gemini key")
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-2.0-flash")
	if c == nil {
		t.Fatal("expected pricing for gemini-2.0-flash")
	}
	if got := c.Cost(1_000_000, 1_000_000); got != 0.5 {
		t.Fatalf("cost = %v, want 0.5", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Fatal("expected nil for unknown model")
	}
}
