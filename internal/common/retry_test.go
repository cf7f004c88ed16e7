package common

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/gallery/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quick = service.RetryOptions{
	MaxAttempts:  4,
	InitialDelay: time.Millisecond,
	MaxDelay:     2 * time.Millisecond,
	Multiplier:   2,
}

func TestWithRetry(t *testing.T) {
	tests := []struct {
		err       func(attempt int) error
		wantIs    error
		name      string
		wantCalls int
	}{
		{
			name:      "succeeds first time",
			err:       func(int) error { return nil },
			wantCalls: 1,
		},
		{
			name: "recovers from unavailable",
			err: func(attempt int) error {
				if attempt < 3 {
					return ErrCatalogUnavailable
				}
				return nil
			},
			wantCalls: 3,
		},
		{
			name:      "permanent error stops at once",
			err:       func(int) error { return ErrNotFound },
			wantIs:    ErrNotFound,
			wantCalls: 1,
		},
		{
			name:      "exhausts attempts",
			err:       func(int) error { return ErrRateLimit },
			wantIs:    ErrMaxRetries,
			wantCalls: 4,
		},
		{
			name: "explicit non retryable wins",
			err: func(int) error {
				return &RetryableError{Err: ErrCatalogUnavailable, Retryable: false}
			},
			wantIs:    ErrCatalogUnavailable,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), func() error {
				calls++
				return tt.err(calls)
			}, quick)

			if tt.wantIs == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantIs)
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := WithRetry(ctx, func() error {
		calls++
		cancel()
		return ErrCatalogUnavailable
	}, service.RetryOptions{MaxAttempts: 5, InitialDelay: time.Second})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestBackoff_Next(t *testing.T) {
	opts := service.RetryOptions{
		MaxAttempts:  5,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     50 * time.Millisecond,
		Multiplier:   2,
	}

	tests := []struct {
		name  string
		errs  []error
		waits []time.Duration
	}{
		{
			name:  "exponential up to the cap",
			errs:  []error{ErrCatalogUnavailable, ErrCatalogUnavailable, ErrCatalogUnavailable, ErrCatalogUnavailable},
			waits: []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 40 * time.Millisecond, 50 * time.Millisecond},
		},
		{
			name:  "server hint is honored",
			errs:  []error{&RateLimitError{RetryAfter: 30 * time.Millisecond}},
			waits: []time.Duration{30 * time.Millisecond},
		},
		{
			name:  "server hint is capped",
			errs:  []error{&RateLimitError{RetryAfter: time.Hour}},
			waits: []time.Duration{50 * time.Millisecond},
		},
		{
			name:  "rate limit without hint waits the cap",
			errs:  []error{fmt.Errorf("list: %w", ErrRateLimit)},
			waits: []time.Duration{50 * time.Millisecond},
		},
		{
			name:  "hint does not advance the schedule",
			errs:  []error{&RateLimitError{RetryAfter: time.Millisecond}, ErrCatalogUnavailable},
			waits: []time.Duration{time.Millisecond, 10 * time.Millisecond},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBackoff(opts)
			for i, err := range tt.errs {
				assert.Equal(t, tt.waits[i], b.next(err), "retry %d", i+1)
			}
		})
	}
}

func TestRateLimitError(t *testing.T) {
	err := fmt.Errorf("fetch: %w", &RateLimitError{RetryAfter: 2 * time.Second})
	assert.ErrorIs(t, err, ErrRateLimit)
	assert.True(t, IsRetryable(err))
	assert.Contains(t, err.Error(), "retry after 2s")
	assert.Equal(t, "rate limit exceeded", (&RateLimitError{}).Error())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(fmt.Errorf("fetch: %w", ErrCatalogUnavailable)))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(ErrStorageWrite))
	assert.False(t, IsRetryable(context.Canceled))
}
