package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deepnoodle-ai/llmkit/slogger"
	wonton "github.com/deepnoodle-ai/wonton/retry"
)

const (
	DefaultMaxAttempts = 3
	DefaultDelay       = 1 * time.Second
)

// Func is one attempt of a retried call.
type Func func(ctx context.Context) error

// Classifier reports whether a failed attempt may be retried.
type Classifier func(err error) bool

// Policy retries a call a fixed number of times with a fixed delay between
// attempts. The zero value uses DefaultMaxAttempts and DefaultDelay and
// treats every error as retryable.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	Retryable   Classifier
	Logger      slogger.Logger
}

// ExhaustedError is returned once every attempt has failed with a retryable
// error. Its message carries the last failure so details such as a rate
// limit notice survive.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// IsExhausted reports whether err came from a policy that ran out of attempts.
func IsExhausted(err error) bool {
	var exhausted *ExhaustedError
	return errors.As(err, &exhausted)
}

// Do runs fn until it succeeds, fails with a non-retryable error, the
// context is done, or the attempts run out. Non-retryable failures and
// cancellation are returned unwrapped.
func (p Policy) Do(ctx context.Context, fn Func) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	delay := p.Delay
	if delay < 0 {
		delay = 0
	}
	logger := p.Logger
	if logger == nil {
		logger = slogger.DefaultLogger
	}

	err := wonton.DoSimple(ctx, func() error {
		return fn(ctx)
	},
		wonton.WithMaxAttempts(maxAttempts),
		wonton.WithConstantBackoff(delay),
		wonton.WithJitter(0),
		wonton.WithRetryIf(func(err error) bool {
			return ctx.Err() == nil && p.retryable(err)
		}),
		wonton.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Warn("retrying llm call",
				"attempt", attempt+1,
				"max_attempts", maxAttempts,
				"delay", delay,
				"error", err)
		}),
	)
	if err == nil {
		return nil
	}
	var retryErr *wonton.Error
	if !errors.As(err, &retryErr) {
		return err
	}
	last := retryErr.LastError()
	if ctx.Err() != nil || !p.retryable(last) {
		return last
	}
	return &ExhaustedError{Attempts: retryErr.Attempts, Err: last}
}

func (p Policy) retryable(err error) bool {
	return p.Retryable == nil || p.Retryable(err)
}
