package openai

import (
	"net/http"

	"github.com/deepnoodle-ai/llmkit/slogger"
	"github.com/openai/openai-go/option"
)

// Option is a function that configures the Provider
type Option func(*Provider)

// WithClient sets the HTTP client.
func WithClient(client *http.Client) Option {
	return func(p *Provider) {
		p.options = append(p.options, option.WithHTTPClient(client))
	}
}

// WithLogger sets the logger used for call diagnostics.
func WithLogger(logger slogger.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithRequestOptions appends raw openai-go request options, for example
// extra headers for an OpenAI-compatible gateway.
func WithRequestOptions(opts ...option.RequestOption) Option {
	return func(p *Provider) {
		p.options = append(p.options, opts...)
	}
}
