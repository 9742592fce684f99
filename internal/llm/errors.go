package llm

import (
	"errors"
	"fmt"
	"time"
)

// APIError is an error response returned by a provider's API, carrying the
// provider's own error message.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s API error (HTTP %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrEmptyResponse indicates a successful call that carried no text.
var ErrEmptyResponse = errors.New("response contained no text")

// ErrorMessage returns the message to show a user for err: the provider's
// own message when the error came from its API, err.Error() otherwise.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// classify wraps an API error by status: 429 is a rate limit, 5xx means the
// provider is unavailable, anything else is returned as is.
func classify(apiErr *APIError) error {
	switch {
	case apiErr.StatusCode == 429:
		return &ErrRateLimit{Err: apiErr}
	case apiErr.StatusCode >= 500:
		return &ErrProviderUnavailable{Err: apiErr}
	default:
		return apiErr
	}
}
