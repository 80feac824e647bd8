package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrorMarker prefixes every error returned as result text.
const ErrorMarker = "Error: "

// NoResponseText is returned when a provider answers without any text.
const NoResponseText = "No response generated"

// ErrNoMessages is the request-shape cause used when a conversation is empty
// and the adapter cannot send an empty prompt.
var ErrNoMessages = errors.New("no messages provided")

// ErrorKind classifies a provider failure.
type ErrorKind int

const (
	// KindTransient failures (network errors, rate limits, server errors,
	// anything unrecognized) are retried.
	KindTransient ErrorKind = iota

	// KindAuthorization failures mean the credential was rejected.
	KindAuthorization

	// KindRequestShape failures mean the request itself was rejected, for
	// example because the context length was exceeded.
	KindRequestShape
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindRequestShape:
		return "request_shape"
	default:
		return "transient"
	}
}

// Terminal reports whether retrying cannot help.
func (k ErrorKind) Terminal() bool {
	return k == KindAuthorization || k == KindRequestShape
}

// ProviderError is a classified failure from one provider call.
type ProviderError struct {
	Provider   string
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	what := fmt.Sprintf("%s error", e.Kind)
	if e.Kind == KindAuthorization {
		what = "the provided API key is invalid"
	}
	if e.StatusCode > 0 {
		what = fmt.Sprintf("%s (status %d)", what, e.StatusCode)
	}
	if msg == "" {
		return fmt.Sprintf("%s: %s", e.Provider, what)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, what, msg)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ResultText renders the error as result text for Generate.
func (e *ProviderError) ResultText() string {
	return ErrorMarker + e.Error()
}

// CallbackError wraps a failure returned by a streaming sink.
type CallbackError struct {
	Err error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("stream callback failed: %v", e.Err)
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}

// AsProviderError returns the ProviderError in err's chain, if any.
func AsProviderError(err error) (*ProviderError, bool) {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr, true
	}
	return nil, false
}

// IsTerminal reports whether err is an authorization or request-shape
// ProviderError.
func IsTerminal(err error) bool {
	providerErr, ok := AsProviderError(err)
	return ok && providerErr.Kind.Terminal()
}

// IsRetryable reports whether a failed attempt should be tried again.
// Classified failures follow their kind; unclassified failures are
// transient unless they are a sink failure or a cancellation.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if providerErr, ok := AsProviderError(err); ok {
		return !providerErr.Kind.Terminal()
	}
	var callbackErr *CallbackError
	if errors.As(err, &callbackErr) {
		return false
	}
	return !errors.Is(err, context.Canceled)
}
