package config

// Provider configures one named LLM adapter.
type Provider struct {
	// Name identifies this entry. It defaults to Type when empty.
	Name string `yaml:"Name" json:"Name" toml:"Name"`

	// Type is the registered provider ("openai", "google", "anthropic").
	// When empty it is inferred from Model.
	Type string `yaml:"Type,omitempty" json:"Type,omitempty" toml:"Type,omitempty"`

	Model string `yaml:"Model" json:"Model" toml:"Model"`

	// APIKey and Endpoint may reference environment variables as ${VAR}.
	APIKey   string `yaml:"APIKey,omitempty" json:"APIKey,omitempty" toml:"APIKey,omitempty"`
	Endpoint string `yaml:"Endpoint,omitempty" json:"Endpoint,omitempty" toml:"Endpoint,omitempty"`

	MaxOutputTokens int     `yaml:"MaxOutputTokens,omitempty" json:"MaxOutputTokens,omitempty" toml:"MaxOutputTokens,omitempty"`
	Temperature     float64 `yaml:"Temperature,omitempty" json:"Temperature,omitempty" toml:"Temperature,omitempty"`

	// Timeout and RetryDelay are Go duration strings such as "30s".
	Timeout        string `yaml:"Timeout,omitempty" json:"Timeout,omitempty" toml:"Timeout,omitempty"`
	MaxAttempts    int    `yaml:"MaxAttempts,omitempty" json:"MaxAttempts,omitempty" toml:"MaxAttempts,omitempty"`
	RetryDelay     string `yaml:"RetryDelay,omitempty" json:"RetryDelay,omitempty" toml:"RetryDelay,omitempty"`
	ChunkThreshold int    `yaml:"ChunkThreshold,omitempty" json:"ChunkThreshold,omitempty" toml:"ChunkThreshold,omitempty"`
}

// File is the contents of an llmkit configuration file.
type File struct {
	LogLevel string `yaml:"LogLevel,omitempty" json:"LogLevel,omitempty" toml:"LogLevel,omitempty"`

	// Default names the provider used when none is requested. The first
	// provider is used when it is empty.
	Default string `yaml:"Default,omitempty" json:"Default,omitempty" toml:"Default,omitempty"`

	Providers []Provider `yaml:"Providers,omitempty" json:"Providers,omitempty" toml:"Providers,omitempty"`
}
