package anthropic

import (
	"github.com/deepnoodle-ai/llmkit/llm"
	"github.com/deepnoodle-ai/llmkit/providers"
)

func init() {
	// Register for claude-* models
	providers.Register(providers.ProviderEntry{
		Name:    ProviderName,
		Match:   providers.PrefixMatcher("claude-"),
		Factory: factory,
		EnvKeys: []string{"ANTHROPIC_API_KEY"},
	})
}

func factory(cfg llm.AdapterConfig, opts providers.Options) (llm.LLM, error) {
	var options []Option
	if opts.Logger != nil {
		options = append(options, WithLogger(opts.Logger))
	}
	if opts.HTTPClient != nil {
		options = append(options, WithClient(opts.HTTPClient))
	}
	p, err := New(cfg, options...)
	if err != nil {
		return nil, err
	}
	return p, nil
}
