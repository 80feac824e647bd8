package openai

import (
	"github.com/deepnoodle-ai/llmkit/llm"
	"github.com/deepnoodle-ai/llmkit/providers"
)

func init() {
	providers.Register(providers.ProviderEntry{
		Name:    ProviderName,
		Match:   providers.PrefixesMatcher("gpt-", "chatgpt-", "o1", "o3", "o4"),
		Factory: factory,
		EnvKeys: []string{"OPENAI_API_KEY"},
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
