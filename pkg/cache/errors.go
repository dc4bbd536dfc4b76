package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a remote backend cannot be reached. Open
// falls back to a NullCache on it; the CLI logs a warning.
var ErrUnavailable = errors.New("cache backend unavailable")

// RetryableError marks a failure as transient. [NewRedisCache] wraps ping
// errors with it so that a Redis server still starting up (connection
// refused, dial timeout) is retried instead of disabling the cache.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or any error it wraps, is a
// RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff spaces out retries of a remote cache operation. The delay doubles
// after every failed attempt, up to Max.
type Backoff struct {
	Attempts int           // total calls, including the first
	Delay    time.Duration // wait after the first failure
	Max      time.Duration // cap on a single wait; 0 means no cap
}

// DefaultBackoff is used by [RetryWithBackoff] and by [NewRedisCache] when
// RedisOptions.Backoff is zero.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 250 * time.Millisecond, Max: 2 * time.Second}

// Retry calls fn until it succeeds, returns an error not marked Retryable,
// or the attempts run out. It returns ctx.Err() if ctx ends while waiting.
// The last error is returned when every attempt failed.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
		if b.Max > 0 && delay > b.Max {
			delay = b.Max
		}
	}
	return err
}

// RetryWithBackoff is DefaultBackoff.Retry.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Retry(ctx, fn)
}
