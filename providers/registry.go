package providers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/deepnoodle-ai/llmkit/llm"
	"github.com/deepnoodle-ai/llmkit/slogger"
)

// ErrUnknownProvider is returned when no registered provider matches.
var ErrUnknownProvider = errors.New("unknown provider")

// Options holds construction settings shared by every adapter.
type Options struct {
	Logger     slogger.Logger
	HTTPClient *http.Client
}

// Factory creates an adapter from an adapter configuration.
type Factory func(cfg llm.AdapterConfig, opts Options) (llm.LLM, error)

// ModelMatcher determines if a model name matches a provider.
type ModelMatcher func(model string) bool

// ProviderEntry describes one registered provider.
type ProviderEntry struct {
	Name    string
	Match   ModelMatcher
	Factory Factory

	// EnvKeys lists the environment variables checked, in order, for an
	// API key when none is configured.
	EnvKeys []string
}

// APIKeyFromEnv returns the first non-empty value among the entry's
// environment variables.
func (e ProviderEntry) APIKeyFromEnv() string {
	for _, key := range e.EnvKeys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

// Registry maps provider names and model names to adapter factories.
// Providers register themselves during init().
type Registry struct {
	mu      sync.RWMutex
	entries []ProviderEntry
}

// Register adds a provider entry to the registry. Entries are matched in
// registration order. Registering a name twice replaces the earlier entry.
func (r *Registry) Register(entry ProviderEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.entries {
		if existing.Name == entry.Name {
			r.entries[i] = entry
			return
		}
	}
	r.entries = append(r.entries, entry)
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (ProviderEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.entries {
		if strings.EqualFold(entry.Name, name) {
			return entry, true
		}
	}
	return ProviderEntry{}, false
}

// Match returns the first entry whose matcher accepts model.
func (r *Registry) Match(model string) (ProviderEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.entries {
		if entry.Match != nil && entry.Match(model) {
			return entry, true
		}
	}
	return ProviderEntry{}, false
}

// Resolve finds the entry for a provider name, or by model name when the
// provider name is empty.
func (r *Registry) Resolve(provider, model string) (ProviderEntry, error) {
	if provider != "" {
		if entry, ok := r.Lookup(provider); ok {
			return entry, nil
		}
		return ProviderEntry{}, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	if entry, ok := r.Match(model); ok {
		return entry, nil
	}
	return ProviderEntry{}, fmt.Errorf("%w for model %q", ErrUnknownProvider, model)
}

// New creates an adapter. When cfg has no API key, the provider's
// environment variables are consulted.
func (r *Registry) New(provider string, cfg llm.AdapterConfig, opts Options) (llm.LLM, error) {
	entry, err := r.Resolve(provider, cfg.Model)
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		cfg.APIKey = entry.APIKeyFromEnv()
	}
	return entry.Factory(cfg, opts)
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for _, entry := range r.entries {
		names = append(names, entry.Name)
	}
	sort.Strings(names)
	return names
}

// PrefixMatcher returns a matcher that checks for a case-insensitive prefix.
func PrefixMatcher(prefix string) ModelMatcher {
	return PrefixesMatcher(prefix)
}

// PrefixesMatcher returns a matcher that checks for any of the given
// prefixes (case-insensitive).
func PrefixesMatcher(prefixes ...string) ModelMatcher {
	lowered := make([]string, len(prefixes))
	for i, p := range prefixes {
		lowered[i] = strings.ToLower(p)
	}
	return func(model string) bool {
		lower := strings.ToLower(model)
		for _, prefix := range lowered {
			if strings.HasPrefix(lower, prefix) {
				return true
			}
		}
		return false
	}
}

// ContainsMatcher returns a matcher that checks if the model contains a
// substring (case-insensitive).
func ContainsMatcher(substr string) ModelMatcher {
	substr = strings.ToLower(substr)
	return func(model string) bool {
		return strings.Contains(strings.ToLower(model), substr)
	}
}

// Global default registry
var defaultRegistry = &Registry{}

// Register adds a provider entry to the default registry.
// This is typically called from provider init() functions.
func Register(entry ProviderEntry) {
	defaultRegistry.Register(entry)
}

// New creates an adapter using the default registry.
func New(provider string, cfg llm.AdapterConfig, opts Options) (llm.LLM, error) {
	return defaultRegistry.New(provider, cfg, opts)
}

// DefaultRegistry returns the default global registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
