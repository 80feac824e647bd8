package anthropic

import (
	"net/http"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/deepnoodle-ai/llmkit/slogger"
)

type Option func(*Provider)

func WithClient(client *http.Client) Option {
	return func(p *Provider) {
		p.options = append(p.options, option.WithHTTPClient(client))
	}
}

func WithLogger(logger slogger.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithVersion overrides the anthropic-version header.
func WithVersion(version string) Option {
	return func(p *Provider) {
		p.options = append(p.options, option.WithHeader("anthropic-version", version))
	}
}
