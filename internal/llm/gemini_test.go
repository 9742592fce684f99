package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:     "test-key",
		Model:      "gemini-flash",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	return p
}

func TestGeminiProvider_HappyPath(t *testing.T) {
	var gotPath, gotKey, gotBody string
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"role":  "model",
						"parts": []map[string]any{{"text": "Mitral stenosis causes a diastolic murmur."}},
					},
					"finishReason": "STOP",
				},
			},
			"usageMetadata": map[string]any{
				"promptTokenCount":     12,
				"candidatesTokenCount": 8,
				"totalTokenCount":      20,
			},
		})
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Generate(context.Background(), UserPrompt("Explain the murmur"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(gotPath, "models/gemini-2.0-flash:generateContent") {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if !strings.Contains(gotBody, "Explain the murmur") {
		t.Errorf("prompt missing from body: %s", gotBody)
	}
	if resp.Text != "Mitral stenosis causes a diastolic murmur." {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.Usage.InputTokens != 12 || resp.Usage.OutputTokens != 8 || resp.Usage.TotalTokens != 20 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Errorf("stop reason = %q", resp.StopReason)
	}
	if resp.Model != "gemini-2.0-flash" {
		t.Errorf("model = %q", resp.Model)
	}
}

func TestGeminiProvider_ErrorMessageFromBody(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"quota exceeded","status":"INVALID_ARGUMENT"}}`))
	}

	p := newTestGeminiProvider(t, handler)
	_, err := p.Generate(context.Background(), UserPrompt("hi"))
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != 400 {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if got := ErrorMessage(err); got != "quota exceeded" {
		t.Errorf("ErrorMessage = %q, want %q", got, "quota exceeded")
	}
}

func TestGeminiProvider_RateLimitClassified(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`))
	}

	p := newTestGeminiProvider(t, handler)
	_, err := p.Generate(context.Background(), UserPrompt("hi"))

	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T: %v", err, err)
	}
	if got := ErrorMessage(err); got != "Resource has been exhausted" {
		t.Errorf("ErrorMessage = %q", got)
	}
}

func TestGeminiProvider_ErrorInSuccessBody(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}

	p := newTestGeminiProvider(t, handler)
	_, err := p.Generate(context.Background(), UserPrompt("hi"))
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("error payload reported as empty response: %v", err)
	}
	if got := ErrorMessage(err); got != "quota exceeded" {
		t.Errorf("ErrorMessage = %q, want %q", got, "quota exceeded")
	}
}

func TestPayloadError(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{`{"error":{"message":"x"}}`, true},
		{`{"error":{}}`, true},
		{`{"candidates":[]}`, false},
		{`{"error":"plain"}`, false},
		{`not json`, false},
	}
	for _, tt := range tests {
		if got := payloadError([]byte(tt.body)); got != tt.want {
			t.Errorf("payloadError(%s) = %v, want %v", tt.body, got, tt.want)
		}
	}
}

func TestGeminiProvider_NoCandidates(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}

	p := newTestGeminiProvider(t, handler)
	_, err := p.Generate(context.Background(), UserPrompt("hi"))
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(context.Background(), GeminiConfig{Model: "gemini-flash"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
