package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure as transient. The icon client wraps
// network errors and 5xx responses with it so [Retry] attempts the fetch
// again; unwrapped errors (4xx, malformed responses) abort immediately.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, sleeping delay between attempts and
// doubling it each round. Only errors wrapped in [RetryableError] trigger
// another attempt. When the context is cancelled during a backoff sleep,
// ctx.Err() is returned; otherwise the last error from fn.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !errors.As(lastErr, new(*RetryableError)) {
			return lastErr
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}

// RetryWithBackoff runs fn with the defaults used for outbound icon API
// calls: 3 attempts starting at a 1 second delay.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}
