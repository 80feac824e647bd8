package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/deepnoodle-ai/llmkit/llm"
	"github.com/deepnoodle-ai/llmkit/providers"
	"github.com/deepnoodle-ai/llmkit/slogger"
)

// ErrNoProviders is returned when a file configures no providers.
var ErrNoProviders = errors.New("no providers configured")

// BuildOptions configure how adapters are constructed.
type BuildOptions struct {
	Logger     slogger.Logger
	HTTPClient *http.Client
	Registry   *providers.Registry
}

type BuildOption func(*BuildOptions)

func WithLogger(logger slogger.Logger) BuildOption {
	return func(opts *BuildOptions) {
		opts.Logger = logger
	}
}

func WithHTTPClient(client *http.Client) BuildOption {
	return func(opts *BuildOptions) {
		opts.HTTPClient = client
	}
}

// WithRegistry uses registry instead of the default provider registry.
func WithRegistry(registry *providers.Registry) BuildOption {
	return func(opts *BuildOptions) {
		opts.Registry = registry
	}
}

func (p Provider) key() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Type
}

// AdapterConfig converts the provider entry into an adapter configuration.
// Environment references in APIKey and Endpoint are expanded.
func (p Provider) AdapterConfig() (llm.AdapterConfig, error) {
	cfg := llm.AdapterConfig{
		APIKey:          os.ExpandEnv(p.APIKey),
		Model:           p.Model,
		MaxOutputTokens: p.MaxOutputTokens,
		Temperature:     p.Temperature,
		Endpoint:        os.ExpandEnv(p.Endpoint),
		MaxAttempts:     p.MaxAttempts,
		ChunkThreshold:  p.ChunkThreshold,
	}
	var err error
	if cfg.Timeout, err = parseDuration("Timeout", p.Timeout); err != nil {
		return cfg, err
	}
	if cfg.RetryDelay, err = parseDuration("RetryDelay", p.RetryDelay); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", field, value)
	}
	return d, nil
}

// Validate checks the file for missing or conflicting values.
func (f *File) Validate() error {
	if f.LogLevel != "" && !isValidLogLevel(f.LogLevel) {
		return fmt.Errorf("invalid log level: %s", f.LogLevel)
	}
	seen := make(map[string]bool, len(f.Providers))
	for i, p := range f.Providers {
		key := p.key()
		if key == "" {
			return fmt.Errorf("provider %d: name or type is required", i)
		}
		if seen[key] {
			return fmt.Errorf("provider %q: duplicate name", key)
		}
		seen[key] = true
		if strings.TrimSpace(p.Model) == "" {
			return fmt.Errorf("provider %q: %w", key, llm.ErrMissingModel)
		}
		if _, err := p.AdapterConfig(); err != nil {
			return fmt.Errorf("provider %q: %w", key, err)
		}
	}
	if f.Default != "" && !seen[f.Default] {
		return fmt.Errorf("default provider %q is not configured", f.Default)
	}
	return nil
}

// Lookup returns the provider entry with the given name. An empty name
// selects the default provider.
func (f *File) Lookup(name string) (Provider, error) {
	if len(f.Providers) == 0 {
		return Provider{}, ErrNoProviders
	}
	if name == "" {
		name = f.Default
	}
	if name == "" {
		return f.Providers[0], nil
	}
	for _, p := range f.Providers {
		if p.key() == name {
			return p, nil
		}
	}
	return Provider{}, fmt.Errorf("provider %q is not configured", name)
}

// Build creates the adapter for the named provider entry.
func (f *File) Build(name string, opts ...BuildOption) (llm.LLM, error) {
	p, err := f.Lookup(name)
	if err != nil {
		return nil, err
	}
	return p.Build(opts...)
}

// Build creates the adapter for this provider entry.
func (p Provider) Build(opts ...BuildOption) (llm.LLM, error) {
	buildOpts := &BuildOptions{}
	for _, opt := range opts {
		opt(buildOpts)
	}
	registry := buildOpts.Registry
	if registry == nil {
		registry = providers.DefaultRegistry()
	}
	cfg, err := p.AdapterConfig()
	if err != nil {
		return nil, err
	}
	model, err := registry.New(p.Type, cfg, providers.Options{
		Logger:     buildOpts.Logger,
		HTTPClient: buildOpts.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("provider %q: %w", p.key(), err)
	}
	return model, nil
}

// Logger returns a logger at the configured level, or the default logger
// when no level is set.
func (f *File) Logger() slogger.Logger {
	if f.LogLevel == "" {
		return slogger.DefaultLogger
	}
	return slogger.New(slogger.LevelFromString(f.LogLevel))
}

func isValidLogLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}
