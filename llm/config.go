package llm

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	DefaultMaxOutputTokens = 1000
	DefaultTemperature     = 0.0
	DefaultTimeout         = 30 * time.Second
	DefaultMaxAttempts     = 3
	DefaultRetryDelay      = 1 * time.Second
	DefaultChunkThreshold  = 50
)

// ErrMissingModel is returned when an adapter is constructed without a model.
var ErrMissingModel = errors.New("model name is required")

// AdapterConfig holds everything an adapter needs. Adapters take a
// normalized copy at construction and never modify it afterwards.
type AdapterConfig struct {
	APIKey          string
	Model           string
	MaxOutputTokens int
	Temperature     float64

	// Endpoint overrides the provider's base URL.
	Endpoint string

	// Timeout bounds each outbound attempt.
	Timeout time.Duration

	// MaxAttempts and RetryDelay parameterize the retry policy.
	MaxAttempts int
	RetryDelay  time.Duration

	// ChunkThreshold is the buffer length that cuts a synthetic chunk.
	ChunkThreshold int
}

// Normalize returns a copy of c with defaults filled in and the temperature
// clamped to [0, maxTemperature].
func (c AdapterConfig) Normalize(maxTemperature float64) (AdapterConfig, error) {
	c.Model = strings.TrimSpace(c.Model)
	if c.Model == "" {
		return c, ErrMissingModel
	}
	if c.MaxOutputTokens <= 0 {
		c.MaxOutputTokens = DefaultMaxOutputTokens
	}
	c.Temperature = clamp(c.Temperature, 0, maxTemperature)
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.RetryDelay < 0 {
		return c, fmt.Errorf("retry delay must not be negative: %s", c.RetryDelay)
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.ChunkThreshold <= 0 {
		c.ChunkThreshold = DefaultChunkThreshold
	}
	return c, nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
