// Package explain asks a generative-text provider to explain a quiz question.
//
// Ask never fails: any error, including a provider that could not be
// built, is returned to the caller as the text "AI Error: <message>".
package explain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/medtrix/medtrix/internal/llm"
	"github.com/medtrix/medtrix/internal/quiz"
	"github.com/medtrix/medtrix/internal/store"
)

const (
	// Purpose labels explanation calls in the AI request log unless the
	// caller attached its own.
	Purpose = "explain"

	// PurposeFollowUp labels free-form questions typed by the user.
	PurposeFollowUp = "follow-up"

	// PurposeCLI labels requests made by the ask command.
	PurposeCLI = "cli"

	// MaxContext is the number of characters of context sent with a prompt.
	MaxContext = 1000

	errorPrefix = "AI Error: "
)

// Client sends explanation prompts to the configured provider.
type Client struct {
	provider  llm.Provider
	initErr   error
	timeout   time.Duration
	maxTokens int
	log       *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New builds a Client for cfg. A missing credential is logged at error
// level and is not fatal: every later Ask reports it as an AI error.
func New(ctx context.Context, cfg llm.Config, repo store.RequestRepo, opts ...Option) *Client {
	c := newClient(opts)
	c.timeout = cfg.Timeout
	c.maxTokens = cfg.MaxTokens

	if cfg.Provider != "mock" && cfg.APIKey() == "" {
		c.log.Error("no API key configured for explanations", zap.String("provider", cfg.Provider))
	}

	p, err := llm.NewProvider(ctx, cfg, repo, c.log.Named("llm"))
	if err != nil {
		c.initErr = err
		return c
	}
	c.provider = p
	return c
}

// NewWithProvider wraps an already built provider.
func NewWithProvider(p llm.Provider, opts ...Option) *Client {
	c := newClient(opts)
	c.provider = p
	return c
}

func newClient(opts []Option) *Client {
	c := &Client{log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("explain")
	return c
}

// Ask sends prompt followed by the first MaxContext characters of excerpt
// and returns the generated text, or "AI Error: <message>" on failure.
func (c *Client) Ask(ctx context.Context, prompt, excerpt string) string {
	if c.initErr != nil {
		return errorPrefix + llm.ErrorMessage(c.initErr)
	}

	if _, ok := llm.PurposeOf(ctx); !ok {
		ctx = llm.WithPurpose(ctx, Purpose)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := llm.UserPrompt(BuildPrompt(prompt, excerpt))
	req.MaxTokens = c.maxTokens

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		c.log.Debug("explanation failed", zap.Error(err))
		return errorPrefix + llm.ErrorMessage(err)
	}
	return resp.Text
}

// IsError reports whether text is an error returned by Ask.
func IsError(text string) bool {
	return strings.HasPrefix(text, errorPrefix)
}

// Model reports the model explanations are sent to, or "" when the
// provider could not be built.
func (c *Client) Model() string {
	if c.provider == nil {
		return ""
	}
	return c.provider.ModelID()
}

// Err returns the error that prevented building the provider, if any.
func (c *Client) Err() error { return c.initErr }

// BuildPrompt joins prompt and the truncated excerpt into the request text.
func BuildPrompt(prompt, excerpt string) string {
	return prompt + "\n\nContext: " + truncate(excerpt, MaxContext)
}

func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// QuestionContext renders a question, its lettered options and the
// correct letters as explanation context.
func QuestionContext(q quiz.Question) string {
	var b strings.Builder
	b.WriteString(q.Text)
	var correct []string
	for i, o := range q.Options {
		letter := quiz.OptionLabel(i)
		fmt.Fprintf(&b, "\n%s) %s", letter, o.Text)
		if o.Correct {
			correct = append(correct, letter)
		}
	}
	if len(correct) > 0 {
		b.WriteString("\nCorrect: " + strings.Join(correct, ", "))
	}
	return b.String()
}
