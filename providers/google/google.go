package google

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/deepnoodle-ai/llmkit/llm"
	"github.com/deepnoodle-ai/llmkit/providers"
	"github.com/deepnoodle-ai/llmkit/slogger"
	"google.golang.org/genai"
)

const (
	ProviderName = "google"

	// MaxTemperature is the upper bound accepted by the Gemini API.
	MaxTemperature = 2.0

	tokensPerWord = 1.3
)

var DefaultVersion = "v1beta"

var _ llm.LLM = &Provider{}

// Provider implements llm.LLM on the Gemini GenerateContent API. The
// conversation is flattened into a single labelled prompt and streaming is
// synthesized from the complete response.
type Provider struct {
	cfg        llm.AdapterConfig
	version    string
	httpClient *http.Client
	logger     slogger.Logger
	caller     *providers.Caller

	mutex  sync.Mutex
	client *genai.Client
}

// New returns a Provider for cfg. The genai client is created on first use.
func New(cfg llm.AdapterConfig, opts ...Option) (*Provider, error) {
	cfg, err := cfg.Normalize(MaxTemperature)
	if err != nil {
		return nil, err
	}
	p := &Provider{cfg: cfg, version: DefaultVersion}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slogger.DefaultLogger
	}
	p.caller = providers.NewCaller(ProviderName, cfg, p.logger)
	return p, nil
}

func (p *Provider) initClient(ctx context.Context) (*genai.Client, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.client != nil {
		return p.client, nil
	}
	config := &genai.ClientConfig{
		APIKey:     p.cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: p.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    p.cfg.Endpoint,
			APIVersion: p.version,
		},
	}
	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: ProviderName,
			Kind:     llm.KindAuthorization,
			Message:  fmt.Sprintf("failed to create genai client: %v", err),
			Err:      err,
		}
	}
	p.client = client
	return p.client, nil
}

func (p *Provider) Name() string {
	return ProviderName
}

// Model returns the configured model name.
func (p *Provider) Model() string {
	return p.cfg.Model
}

func (p *Provider) Generate(ctx context.Context, messages []llm.Message) (string, error) {
	prompt := FlattenPrompt(messages)
	return p.caller.Generate(ctx, func(ctx context.Context) (string, error) {
		client, err := p.initClient(ctx)
		if err != nil {
			return "", err
		}
		resp, err := client.Models.GenerateContent(ctx, p.cfg.Model, promptContents(prompt), p.generateConfig())
		if err != nil {
			return "", classifyError(err)
		}
		return responseText(resp), nil
	})
}

// GenerateStreaming obtains the complete response and replays it as
// word-bounded chunks.
func (p *Provider) GenerateStreaming(ctx context.Context, messages []llm.Message, sink llm.Sink) ([]string, error) {
	if sink == nil {
		return providers.Single(p.Generate(ctx, messages))
	}
	text, err := p.Generate(ctx, messages)
	if err != nil {
		return nil, err
	}
	return llm.StreamText(ctx, text, p.cfg.ChunkThreshold, sink)
}

// CountTokens estimates 1.3 tokens per word.
func (p *Provider) CountTokens(text string) int {
	return llm.EstimateTokensByWords(text, tokensPerWord)
}

func (p *Provider) MaxContextLength() int {
	return contextWindows.Lookup(p.cfg.Model)
}

func (p *Provider) generateConfig() *genai.GenerateContentConfig {
	temperature := float32(p.cfg.Temperature)
	return &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: int32(p.cfg.MaxOutputTokens),
	}
}
