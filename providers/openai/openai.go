package openai

import (
	"context"

	"github.com/deepnoodle-ai/llmkit/llm"
	"github.com/deepnoodle-ai/llmkit/providers"
	"github.com/deepnoodle-ai/llmkit/slogger"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	ProviderName = "openai"

	// MaxTemperature is the upper bound of the Chat Completions API.
	MaxTemperature = 2.0

	charsPerToken = 4
)

var _ llm.LLM = &Provider{}

// Provider implements llm.LLM on the OpenAI Chat Completions API with
// native streaming.
type Provider struct {
	cfg     llm.AdapterConfig
	client  openai.Client
	options []option.RequestOption
	logger  slogger.Logger
	caller  *providers.Caller
	tokens  tokenizer
}

// New returns a Provider for cfg. The configuration is normalized and
// copied; it is never modified afterwards.
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

	// The retry policy is applied by the caller, so the SDK must not retry.
	clientOptions := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.APIKey != "" {
		clientOptions = append(clientOptions, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.Endpoint != "" {
		clientOptions = append(clientOptions, option.WithBaseURL(cfg.Endpoint))
	}
	p.client = openai.NewClient(append(clientOptions, p.options...)...)
	p.caller = providers.NewCaller(ProviderName, cfg, p.logger)
	p.tokens = newTokenizer(cfg.Model)
	return p, nil
}

func (p *Provider) Name() string {
	return ProviderName
}

// Model returns the configured model name.
func (p *Provider) Model() string {
	return p.cfg.Model
}

func (p *Provider) Generate(ctx context.Context, messages []llm.Message) (string, error) {
	return p.caller.Generate(ctx, func(ctx context.Context) (string, error) {
		params, err := p.params(messages)
		if err != nil {
			return "", err
		}
		completion, err := p.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", classifyError(err)
		}
		return responseText(completion), nil
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
		return newChunkStream(p.client.Chat.Completions.NewStreaming(ctx, params)), nil
	}, sink)
}

// CountTokens counts tokens with the model's tiktoken encoding, or
// estimates one token per four characters for unknown models.
func (p *Provider) CountTokens(text string) int {
	return p.tokens.Count(text)
}

func (p *Provider) MaxContextLength() int {
	return contextWindows.Lookup(p.cfg.Model)
}

func (p *Provider) params(messages []llm.Message) (openai.ChatCompletionNewParams, error) {
	converted, err := convertMessages(messages)
	if err != nil {
		return openai.ChatCompletionNewParams{}, err
	}
	return openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(p.cfg.Model),
		Messages:            converted,
		MaxCompletionTokens: openai.Int(int64(p.cfg.MaxOutputTokens)),
		Temperature:         openai.Float(p.cfg.Temperature),
	}, nil
}
