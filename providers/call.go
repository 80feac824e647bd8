package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deepnoodle-ai/llmkit/llm"
	"github.com/deepnoodle-ai/llmkit/retry"
	"github.com/deepnoodle-ai/llmkit/slogger"
	"github.com/google/uuid"
)

// GenerateFunc performs one outbound generation attempt.
type GenerateFunc func(ctx context.Context) (string, error)

// OpenFunc opens a native stream. The returned stream is only used after
// its first event has been received.
type OpenFunc func(ctx context.Context) (llm.DeltaStream, error)

// Caller runs the outbound calls of one adapter. Every attempt gets its own
// timeout, failed attempts are retried according to the adapter's policy,
// and terminal failures are turned into result text.
type Caller struct {
	provider  string
	model     string
	timeout   time.Duration
	threshold int
	policy    retry.Policy
	logger    slogger.Logger
}

// NewCaller returns a Caller for an adapter with the given normalized
// configuration.
func NewCaller(provider string, cfg llm.AdapterConfig, logger slogger.Logger) *Caller {
	if logger == nil {
		logger = slogger.DefaultLogger
	}
	return &Caller{
		provider:  provider,
		model:     cfg.Model,
		timeout:   cfg.Timeout,
		threshold: cfg.ChunkThreshold,
		policy: retry.Policy{
			MaxAttempts: cfg.MaxAttempts,
			Delay:       cfg.RetryDelay,
			Retryable:   llm.IsRetryable,
		},
		logger: logger,
	}
}

// Provider returns the provider name used in diagnostics.
func (c *Caller) Provider() string {
	return c.provider
}

// Generate runs call under the retry policy and returns its text. Terminal
// failures are returned as result text with a nil error; exhausted
// transient failures and cancellation are returned as errors.
func (c *Caller) Generate(ctx context.Context, call GenerateFunc) (string, error) {
	logger := c.requestLogger(ctx)
	started := time.Now()

	var text string
	err := c.withLogger(logger).Do(ctx, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		out, err := call(attemptCtx)
		if err != nil {
			return err
		}
		text = out
		return nil
	})
	if err != nil {
		return c.fail(ctx, logger, err)
	}
	logger.Debug("llm call completed",
		"duration", time.Since(started),
		"length", len(text))
	return text, nil
}

// Stream opens a native stream and forwards its deltas to sink. Only the
// opening phase, up to and including the first event, is retried. A
// terminal failure while opening is delivered as a single chunk holding
// the error text followed by the final chunk. A failure after the first
// event is returned as a transient error.
func (c *Caller) Stream(ctx context.Context, open OpenFunc, sink llm.Sink) ([]string, error) {
	logger := c.requestLogger(ctx)
	started := time.Now()

	var stream *primedStream
	err := c.withLogger(logger).Do(ctx, func(ctx context.Context) error {
		primed, err := c.openAttempt(ctx, open)
		if err != nil {
			return err
		}
		stream = primed
		return nil
	})
	if err != nil {
		text, err := c.fail(ctx, logger, err)
		if err != nil {
			return nil, err
		}
		return llm.StreamText(ctx, text, c.threshold, sink)
	}

	contents, err := llm.ForwardDeltas(ctx, stream, sink)
	if err != nil {
		var callbackErr *llm.CallbackError
		switch {
		case ctx.Err() != nil:
			logger.Debug("llm stream canceled", "chunks", len(contents))
		case errors.As(err, &callbackErr):
			logger.Warn("llm stream callback failed", "chunks", len(contents), "error", err)
		default:
			err = c.interrupted(err)
			logger.Error("llm stream interrupted", "chunks", len(contents), "error", err)
		}
		return contents, err
	}
	logger.Debug("llm stream completed",
		"duration", time.Since(started),
		"chunks", len(contents))
	return contents, nil
}

var errOpenTimeout = errors.New("timed out waiting for the first stream event")

// openAttempt opens the stream and waits for its first event within the
// attempt timeout. The timeout no longer applies once the stream is primed.
func (c *Caller) openAttempt(ctx context.Context, open OpenFunc) (*primedStream, error) {
	streamCtx, cancel := context.WithCancelCause(ctx)
	timer := time.AfterFunc(c.timeout, func() { cancel(errOpenTimeout) })

	primed, err := func() (*primedStream, error) {
		inner, err := open(streamCtx)
		if err != nil {
			return nil, err
		}
		primed := &primedStream{DeltaStream: inner, cancel: func() { cancel(nil) }}
		if err := primed.prime(streamCtx); err != nil {
			inner.Close()
			return nil, err
		}
		return primed, nil
	}()
	if !timer.Stop() && err == nil {
		primed.Close()
		err = context.Cause(streamCtx)
	}
	if err != nil {
		if ctx.Err() == nil && errors.Is(context.Cause(streamCtx), errOpenTimeout) {
			err = TransportError(c.provider, errOpenTimeout)
		}
		cancel(nil)
		return nil, err
	}
	return primed, nil
}

// interrupted classifies a failure that ended a stream which had already
// started delivering.
func (c *Caller) interrupted(err error) error {
	if providerErr, ok := llm.AsProviderError(err); ok && providerErr.Kind == llm.KindTransient {
		return providerErr
	}
	return &llm.ProviderError{
		Provider: c.provider,
		Kind:     llm.KindTransient,
		Message:  fmt.Sprintf("stream interrupted: %v", err),
		Err:      err,
	}
}

func (c *Caller) fail(ctx context.Context, logger slogger.Logger, err error) (string, error) {
	if providerErr, ok := llm.AsProviderError(err); ok && providerErr.Kind.Terminal() {
		logger.Warn("llm call rejected",
			"kind", providerErr.Kind.String(),
			"status", providerErr.StatusCode,
			"error", providerErr)
		return providerErr.ResultText(), nil
	}
	if ctx.Err() != nil {
		logger.Debug("llm call canceled", "error", err)
		return "", err
	}
	logger.Error("llm call failed", "error", err)
	return "", err
}

func (c *Caller) withLogger(logger slogger.Logger) retry.Policy {
	policy := c.policy
	policy.Logger = logger
	return policy
}

func (c *Caller) requestLogger(ctx context.Context) slogger.Logger {
	return slogger.Ctx(ctx, c.logger).With(
		"provider", c.provider,
		"model", c.model,
		"request_id", uuid.NewString(),
	)
}

// primedStream is a DeltaStream whose first event has already been read.
type primedStream struct {
	llm.DeltaStream
	cancel  func()
	pending bool
	done    bool
}

func (s *primedStream) prime(ctx context.Context) error {
	if s.DeltaStream.Next(ctx) {
		s.pending = true
		return nil
	}
	if err := s.DeltaStream.Err(); err != nil {
		return err
	}
	s.done = true
	return nil
}

func (s *primedStream) Next(ctx context.Context) bool {
	if s.pending {
		s.pending = false
		return true
	}
	if s.done {
		return false
	}
	return s.DeltaStream.Next(ctx)
}

func (s *primedStream) Close() error {
	err := s.DeltaStream.Close()
	s.cancel()
	return err
}

// Single returns the result of a Generate call as a one-element slice.
// Streaming adapters use it when the caller supplies no sink.
func Single(text string, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	return []string{text}, nil
}
