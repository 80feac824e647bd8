package google

import (
	"net/http"

	"github.com/deepnoodle-ai/llmkit/slogger"
)

// Option is a function that configures the Google provider.
type Option func(*Provider)

// WithVersion sets the API version.
func WithVersion(version string) Option {
	return func(p *Provider) {
		p.version = version
	}
}

// WithClient sets the HTTP client.
func WithClient(client *http.Client) Option {
	return func(p *Provider) {
		p.httpClient = client
	}
}

// WithLogger sets the logger used for call diagnostics.
func WithLogger(logger slogger.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}
