package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/gallery/internal/service"
)

var (
	// ErrRateLimit indicates that the remote API asked us to slow down.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries indicates that all retry attempts have been exhausted.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryableError wraps an error with retry-specific metadata.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// RateLimitError is a throttled response. RetryAfter is the wait the server
// asked for, or zero when it gave none.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (retry after %s)", ErrRateLimit, e.RetryAfter)
	}
	return ErrRateLimit.Error()
}

// Is matches ErrRateLimit.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimit
}

// backoff hands out the wait before each retry.
type backoff struct {
	opts  service.RetryOptions
	delay time.Duration
}

func newBackoff(opts service.RetryOptions) *backoff {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 100 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 5 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}
	return &backoff{opts: opts, delay: opts.InitialDelay}
}

// next returns the wait after err. A server hint is honored up to MaxDelay
// and leaves the exponential schedule where it was; a rate limit without a
// hint waits MaxDelay.
func (b *backoff) next(err error) time.Duration {
	var limited *RateLimitError
	if errors.As(err, &limited) && limited.RetryAfter > 0 {
		return min(limited.RetryAfter, b.opts.MaxDelay)
	}
	if errors.Is(err, ErrRateLimit) {
		return b.opts.MaxDelay
	}

	wait := b.delay
	b.delay = min(time.Duration(float64(b.delay)*b.opts.Multiplier), b.opts.MaxDelay)
	return wait
}

// WithRetry executes an operation with configurable retry behavior.
// Only errors accepted by IsRetryable are retried.
func WithRetry(ctx context.Context, operation func() error, opts service.RetryOptions) error {
	b := newBackoff(opts)
	attempts := b.opts.MaxAttempts

	for attempt := 1; ; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if attempt == attempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, attempts, err)
		}

		wait := b.next(err)
		LogWarn("Operation failed, retrying", Fields{
			"attempt":      attempt,
			"max_attempts": attempts,
			"delay":        wait,
			"error":        err.Error(),
		})

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
