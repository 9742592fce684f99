package explain

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/medtrix/medtrix/internal/llm"
	"github.com/medtrix/medtrix/internal/quiz"
	"github.com/medtrix/medtrix/internal/store"
)

func geminiConfig(srv *httptest.Server) llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Gemini.APIKey = "test-key"
	cfg.Gemini.BaseURL = srv.URL
	cfg.Gemini.HTTPClient = srv.Client()
	return cfg
}

func TestAsk_QuotaExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	c := New(context.Background(), geminiConfig(srv), nil)
	assert.Equal(t, "AI Error: quota exceeded", c.Ask(context.Background(), "Explain", "ctx"))
}

func TestAsk_ErrorInSuccessfulResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	c := New(context.Background(), geminiConfig(srv), nil)
	assert.Equal(t, "AI Error: quota exceeded", c.Ask(context.Background(), "Explain", "ctx"))
}

func TestAsk_ReturnsFirstCandidateText(t *testing.T) {
	var body struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.0-flash:generateContent"), r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"first"},{"text":"second"}]},"finishReason":"STOP"},` +
			`{"content":{"parts":[{"text":"other candidate"}]}}]}`))
	}))
	defer srv.Close()

	c := New(context.Background(), geminiConfig(srv), nil)
	got := c.Ask(context.Background(), "Why is B correct?", "Question text")

	assert.Equal(t, "first", got)
	assert.Equal(t, 1, calls)
	require.Len(t, body.Contents, 1)
	require.Len(t, body.Contents[0].Parts, 1)
	assert.Equal(t, "Why is B correct?\n\nContext: Question text", body.Contents[0].Parts[0].Text)
}

func TestAsk_NoRetryOnServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"code":503,"message":"The model is overloaded."}}`))
	}))
	defer srv.Close()

	c := New(context.Background(), geminiConfig(srv), nil)
	assert.Equal(t, "AI Error: The model is overloaded.", c.Ask(context.Background(), "p", "c"))
	assert.Equal(t, 1, calls)
}

func TestAsk_MissingCredential(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	c := New(context.Background(), llm.DefaultConfig(), nil, WithLogger(zap.New(core)))

	got := c.Ask(context.Background(), "p", "c")
	assert.True(t, strings.HasPrefix(got, "AI Error: "), got)
	assert.Contains(t, got, "API key is required")
	assert.Error(t, c.Err())
	assert.Equal(t, "", c.Model())
	assert.Equal(t, 1, logs.FilterMessage("no API key configured for explanations").Len())
}

func TestAsk_TruncatesContext(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "ok"})
	c := NewWithProvider(mock)

	long := strings.Repeat("é", MaxContext+50)
	assert.Equal(t, "ok", c.Ask(context.Background(), "Explain", long))

	require.Equal(t, 1, mock.CallCount())
	sent := mock.Calls[0].Messages[0].Content
	assert.Equal(t, "Explain\n\nContext: "+strings.Repeat("é", MaxContext), sent)
}

func TestAsk_ProviderErrorBecomesText(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: errors.New("dial tcp: connection refused")},
		llm.MockResponse{Err: &llm.APIError{Provider: "gemini", StatusCode: 403, Message: "API key not valid"}},
	)
	c := NewWithProvider(mock)

	assert.Equal(t, "AI Error: dial tcp: connection refused", c.Ask(context.Background(), "p", ""))
	got := c.Ask(context.Background(), "p", "")
	assert.Equal(t, "AI Error: API key not valid", got)
	assert.True(t, IsError(got))
	assert.False(t, IsError("Mitral stenosis follows rheumatic fever."))
}

func TestAsk_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := geminiConfig(srv)
	cfg.Timeout = 50 * time.Millisecond
	c := New(context.Background(), cfg, nil)

	got := c.Ask(context.Background(), "p", "c")
	assert.True(t, strings.HasPrefix(got, "AI Error: "), got)
	assert.Contains(t, got, "deadline exceeded")
}

func TestAsk_RecordsRequest(t *testing.T) {
	s, err := store.Open("file:explain_records?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	c := New(context.Background(), llm.Config{Provider: "mock", MaxTokens: 256}, s.RequestRepo())
	assert.Equal(t, llm.MockOfflineText, c.Ask(llm.WithSession(context.Background(), "sess"), "p", "c"))
	assert.Equal(t, "mock", c.Model())

	rows, err := s.RequestRepo().Query(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Purpose, rows[0].Purpose)
	assert.Equal(t, "sess", rows[0].SessionID)
	assert.Equal(t, "p\n\nContext: c", strings.TrimSpace(strings.TrimPrefix(rows[0].Prompt, "[user]\n")))
}

func TestAsk_KeepsCallerPurpose(t *testing.T) {
	s, err := store.Open("file:explain_purpose?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	c := New(context.Background(), llm.Config{Provider: "mock", MaxTokens: 256}, s.RequestRepo())
	c.Ask(llm.WithPurpose(context.Background(), PurposeFollowUp), "why?", "")

	rows, err := s.RequestRepo().Query(context.Background(), store.QueryOpts{Purpose: PurposeFollowUp})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestQuestionContext(t *testing.T) {
	q := quiz.Question{
		Text: "First-line treatment for anaphylaxis?",
		Options: []quiz.Option{
			{Text: "Antihistamine"},
			{Text: "IM adrenaline", Correct: true},
			{Text: "Steroids"},
		},
	}
	want := "First-line treatment for anaphylaxis?\nA) Antihistamine\nB) IM adrenaline\nC) Steroids\nCorrect: B"
	assert.Equal(t, want, QuestionContext(q))
	assert.Equal(t, "No options", QuestionContext(quiz.Question{Text: "No options"}))
}
