package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/deepnoodle-ai/llmkit/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   llm.ErrorKind
	}{
		{400, llm.KindRequestShape},
		{413, llm.KindRequestShape},
		{422, llm.KindRequestShape},
		{401, llm.KindAuthorization},
		{403, llm.KindAuthorization},
		{404, llm.KindTransient},
		{429, llm.KindTransient},
		{500, llm.KindTransient},
		{503, llm.KindTransient},
		{529, llm.KindTransient},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyStatus(tc.status))
		})
	}
}

func TestNewError(t *testing.T) {
	err := NewError("openai", 429, "Rate limit reached", nil)
	assert.Equal(t, llm.KindTransient, err.Kind)
	assert.Equal(t, "openai: transient error (status 429): Rate limit reached", err.Error())
	assert.True(t, llm.IsRetryable(err))

	err = NewError("openai", 401, "Incorrect API key provided", nil)
	assert.False(t, llm.IsRetryable(err))
}

func TestTransportError(t *testing.T) {
	refused := errors.New("connection refused")
	err := TransportError("google", refused)
	providerErr, ok := llm.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, llm.KindTransient, providerErr.Kind)
	assert.ErrorIs(t, err, refused)

	assert.Equal(t, context.Canceled, TransportError("google", context.Canceled))
	assert.NoError(t, TransportError("google", nil))

	terminal := NewError("google", 403, "denied", nil)
	assert.Same(t, terminal, TransportError("google", terminal))
}
