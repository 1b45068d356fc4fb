package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Error kinds reported by Classify.
const (
	KindCanceled    = "canceled"
	KindRateLimit   = "rate_limit"
	KindUnavailable = "unavailable"
	KindInvalid     = "invalid_response"
	KindTruncated   = "truncated"
	KindOther       = "other"
)

// ErrRateLimit means the vendor answered 429. RetryAfter is zero when the
// vendor gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the model's word list did not match the schema
// or was not JSON at all. Content is the raw output.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers network failures, 5xx answers, auth
// errors and a mock with nothing queued.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means the lesson was cut off at MaxTokens. Asking
// again with the same budget gives the same result.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// Classify names the kind of err for logs and retry decisions.
func Classify(err error) string {
	var (
		rl      *ErrRateLimit
		unavail *ErrProviderUnavailable
		invalid *ErrInvalidResponse
		maxTok  *ErrMaxTokensExceeded
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.As(err, &rl):
		return KindRateLimit
	case errors.As(err, &unavail):
		return KindUnavailable
	case errors.As(err, &invalid):
		return KindInvalid
	case errors.As(err, &maxTok):
		return KindTruncated
	default:
		return KindOther
	}
}

// IsTransient reports whether err is worth retrying later, as opposed to a
// request that will keep failing.
func IsTransient(err error) bool {
	switch Classify(err) {
	case KindRateLimit, KindUnavailable:
		return true
	}
	return false
}
