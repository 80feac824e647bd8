package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/deepnoodle-ai/llmkit/llm"
)

// ClassifyStatus maps an HTTP status code to an error kind. Malformed or
// oversized requests and rejected credentials are terminal; everything else,
// including rate limits and server errors, is transient.
func ClassifyStatus(statusCode int) llm.ErrorKind {
	switch statusCode {
	case http.StatusBadRequest, // 400
		http.StatusRequestEntityTooLarge, // 413
		http.StatusUnprocessableEntity:   // 422
		return llm.KindRequestShape
	case http.StatusUnauthorized, // 401
		http.StatusForbidden: // 403
		return llm.KindAuthorization
	}
	return llm.KindTransient
}

// NewError returns a classified error for a failed provider response.
func NewError(provider string, statusCode int, message string, cause error) *llm.ProviderError {
	return &llm.ProviderError{
		Provider:   provider,
		Kind:       ClassifyStatus(statusCode),
		StatusCode: statusCode,
		Message:    message,
		Err:        cause,
	}
}

// NewRequestError returns a request-shape error raised before any network
// call, for example when a conversation cannot be translated.
func NewRequestError(provider string, cause error) *llm.ProviderError {
	return &llm.ProviderError{
		Provider: provider,
		Kind:     llm.KindRequestShape,
		Err:      cause,
	}
}

// TransportError classifies a failure that produced no provider response,
// such as a refused connection or an attempt timeout, as transient.
// Cancellation and already classified errors are returned unchanged.
func TransportError(provider string, err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}
	if _, ok := llm.AsProviderError(err); ok {
		return err
	}
	return &llm.ProviderError{
		Provider: provider,
		Kind:     llm.KindTransient,
		Err:      err,
	}
}
