package anthropic

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/deepnoodle-ai/llmkit/llm"
	"github.com/deepnoodle-ai/llmkit/providers"
	"github.com/deepnoodle-ai/llmkit/slogger"
)

const (
	ProviderName = "anthropic"

	// MaxTemperature is the upper bound of the Messages API.
	MaxTemperature = 1.0

	charsPerToken = 4
)

var _ llm.LLM = &Provider{}

// Provider implements llm.LLM on the Anthropic Messages API with native
// streaming.
type Provider struct {
	cfg     llm.AdapterConfig
	client  anthropic.Client
	options []option.RequestOption
	logger  slogger.Logger
	caller  *providers.Caller
}

func New(cfg llm.AdapterConfig, opts ...Option) (*Provider, error) {
	cfg, err := cfg.Normalize(MaxTemperature)
	if err != nil {
		return nil, err
	}
	p := &Provider{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slogger.DefaultLogger
	}

	clientOptions := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.APIKey != "" {
		clientOptions = append(clientOptions, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.Endpoint != "" {
		clientOptions = append(clientOptions, option.WithBaseURL(cfg.Endpoint))
	}
	p.client = anthropic.NewClient(append(clientOptions, p.options...)...)
	p.caller = providers.NewCaller(ProviderName, cfg, p.logger)
	return p, nil
}

func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) Model() string {
	return p.cfg.Model
}

func (p *Provider) Generate(ctx context.Context, messages []llm.Message) (string, error) {
	return p.caller.Generate(ctx, func(ctx context.Context) (string, error) {
		params, err := p.params(messages)
		if err != nil {
			return "", err
		}
		msg, err := p.client.Messages.New(ctx, params)
		if err != nil {
			return "", classifyError(err)
		}
		return responseText(msg), nil
	})
}

func (p *Provider) GenerateStreaming(ctx context.Context, messages []llm.Message, sink llm.Sink) ([]string, error) {
	if sink == nil {
		return providers.Single(p.Generate(ctx, messages))
	}
	return p.caller.Stream(ctx, func(ctx context.Context) (llm.DeltaStream, error) {
		params, err := p.params(messages)
		if err != nil {
			return nil, err
		}
		return newEventStream(p.client.Messages.NewStreaming(ctx, params)), nil
	}, sink)
}

// CountTokens estimates one token per four characters.
func (p *Provider) CountTokens(text string) int {
	return llm.EstimateTokensByChars(text, charsPerToken)
}

func (p *Provider) MaxContextLength() int {
	return contextWindows.Lookup(p.cfg.Model)
}

func (p *Provider) params(messages []llm.Message) (anthropic.MessageNewParams, error) {
	system, converted, err := convertMessages(messages)
	if err != nil {
		return anthropic.MessageNewParams{}, err
	}
	return anthropic.MessageNewParams{
		Model:       anthropic.Model(p.cfg.Model),
		MaxTokens:   int64(p.cfg.MaxOutputTokens),
		Messages:    converted,
		System:      system,
		Temperature: anthropic.Float(p.cfg.Temperature),
	}, nil
}
