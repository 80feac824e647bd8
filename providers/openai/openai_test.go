package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/deepnoodle-ai/llmkit/llm"
	"github.com/deepnoodle-ai/llmkit/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
	calls atomic.Int32

	mu       sync.Mutex
	captured map[string]any
	auth     string
}

func (ts *testServer) body() map[string]any {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.captured
}

func (ts *testServer) authorization() string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.auth
}

// newTestServer serves every request with handler after recording the
// request body.
func newTestServer(t *testing.T, handler http.HandlerFunc) *testServer {
	t.Helper()
	ts := &testServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.calls.Add(1)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		ts.mu.Lock()
		ts.auth = r.Header.Get("Authorization")
		ts.captured = body
		ts.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func jsonResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}
}

func sseResponse(deltas ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		for _, delta := range deltas {
			chunk := map[string]any{
				"id":      "chatcmpl-test",
				"object":  "chat.completion.chunk",
				"created": 1,
				"model":   "gpt-4o",
				"choices": []map[string]any{{
					"index": 0,
					"delta": map[string]any{"content": delta},
				}},
			}
			data, _ := json.Marshal(chunk)
			fmt.Fprintf(w, "data: %s\n\n", data)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}
}

const completionBody = `{
	"id": "chatcmpl-test",
	"object": "chat.completion",
	"created": 1,
	"model": "gpt-4o",
	"choices": [{
		"index": 0,
		"message": {"role": "assistant", "content": "Hi there, how can I help you today?"},
		"finish_reason": "stop"
	}]
}`

const invalidKeyBody = `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "code": "invalid_api_key"}}`

func newTestProvider(t *testing.T, srv *testServer) *Provider {
	t.Helper()
	p, err := New(llm.AdapterConfig{
		APIKey:     "test-key",
		Model:      ModelGPT4o,
		Endpoint:   srv.URL + "/",
		RetryDelay: time.Millisecond,
	})
	require.NoError(t, err)
	return p
}

type recorder struct {
	chunks []llm.Chunk
}

func (r *recorder) sink(ctx context.Context, chunk llm.Chunk) error {
	r.chunks = append(r.chunks, chunk)
	return nil
}

func TestGenerate(t *testing.T) {
	srv := newTestServer(t, jsonResponse(http.StatusOK, completionBody))
	p := newTestProvider(t, srv)

	text, err := p.Generate(context.Background(), llm.Messages(
		llm.NewSystemMessage("be helpful"),
		llm.NewUserMessage("Hello"),
	))
	require.NoError(t, err)
	assert.Equal(t, "Hi there, how can I help you today?", text)
	assert.Equal(t, int32(1), srv.calls.Load())
	assert.Equal(t, "Bearer test-key", srv.authorization())

	assert.Equal(t, "gpt-4o", srv.body()["model"])
	assert.EqualValues(t, 1000, srv.body()["max_completion_tokens"])
	assert.EqualValues(t, 0, srv.body()["temperature"])
	msgs := srv.body()["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
}

func TestGenerateNoChoices(t *testing.T) {
	srv := newTestServer(t, jsonResponse(http.StatusOK,
		`{"id": "x", "object": "chat.completion", "created": 1, "model": "gpt-4o", "choices": []}`))
	p := newTestProvider(t, srv)

	text, err := p.Generate(context.Background(), llm.Messages(llm.NewUserMessage("Hello")))
	require.NoError(t, err)
	assert.Equal(t, llm.NoResponseText, text)
}

func TestGenerateEmptyContent(t *testing.T) {
	srv := newTestServer(t, jsonResponse(http.StatusOK, `{
		"id": "x", "object": "chat.completion", "created": 1, "model": "o3-mini",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": ""}, "finish_reason": "length"}]
	}`))
	p := newTestProvider(t, srv)
	messages := llm.Messages(llm.NewUserMessage("Hello"))

	text, err := p.Generate(context.Background(), messages)
	require.NoError(t, err)
	assert.Equal(t, llm.NoResponseText, text)

	contents, err := p.GenerateStreaming(context.Background(), messages, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{llm.NoResponseText}, contents)
}

func TestGenerateInvalidKey(t *testing.T) {
	srv := newTestServer(t, jsonResponse(http.StatusUnauthorized, invalidKeyBody))
	p := newTestProvider(t, srv)

	text, err := p.Generate(context.Background(), llm.Messages(llm.NewUserMessage("Hello")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, llm.ErrorMarker))
	assert.Contains(t, text, "openai: the provided API key is invalid (status 401)")
	assert.Contains(t, text, "Incorrect API key provided")
	assert.Equal(t, int32(1), srv.calls.Load())
}

func TestGenerateContextTooLong(t *testing.T) {
	srv := newTestServer(t, jsonResponse(http.StatusBadRequest,
		`{"error": {"message": "This model's maximum context length is 8192 tokens", "type": "invalid_request_error", "code": "context_length_exceeded"}}`))
	p := newTestProvider(t, srv)

	text, err := p.Generate(context.Background(), llm.Messages(llm.NewUserMessage("Hello")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, llm.ErrorMarker))
	assert.Contains(t, text, "maximum context length")
	assert.Equal(t, int32(1), srv.calls.Load())
}

func TestGenerateRateLimitExhausts(t *testing.T) {
	srv := newTestServer(t, jsonResponse(http.StatusTooManyRequests,
		`{"error": {"message": "Rate limit reached for gpt-4o", "type": "requests", "code": "rate_limit_exceeded"}}`))
	p := newTestProvider(t, srv)

	text, err := p.Generate(context.Background(), llm.Messages(llm.NewUserMessage("Hello")))
	require.Error(t, err)
	assert.Empty(t, text)
	assert.True(t, retry.IsExhausted(err))
	assert.Contains(t, err.Error(), "Rate limit reached")
	assert.Equal(t, int32(3), srv.calls.Load())
}

func TestGenerateEmptyConversation(t *testing.T) {
	srv := newTestServer(t, jsonResponse(http.StatusOK, completionBody))
	p := newTestProvider(t, srv)

	text, err := p.Generate(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, llm.ErrorMarker))
	assert.Contains(t, text, llm.ErrNoMessages.Error())
	assert.Equal(t, int32(0), srv.calls.Load())
}

func TestGenerateUnknownRole(t *testing.T) {
	srv := newTestServer(t, jsonResponse(http.StatusOK, completionBody))
	p := newTestProvider(t, srv)

	text, err := p.Generate(context.Background(), llm.Messages(llm.NewMessage("narrator", "meanwhile")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, llm.ErrorMarker))
	assert.Contains(t, text, "narrator")
	assert.Equal(t, int32(0), srv.calls.Load())
}

func TestGenerateStreaming(t *testing.T) {
	srv := newTestServer(t, sseResponse("Hi", "", " there", "!"))
	p := newTestProvider(t, srv)

	rec := &recorder{}
	contents, err := p.GenerateStreaming(context.Background(), llm.Messages(llm.NewUserMessage("Hello")), rec.sink)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hi", " there", "!"}, contents)
	assert.Equal(t, []llm.Chunk{
		{Content: "Hi"},
		{Content: " there"},
		{Content: "!"},
		{IsFinal: true},
	}, rec.chunks)
	assert.Equal(t, true, srv.body()["stream"])
}

func TestGenerateStreamingNilSink(t *testing.T) {
	srv := newTestServer(t, jsonResponse(http.StatusOK, completionBody))
	p := newTestProvider(t, srv)

	contents, err := p.GenerateStreaming(context.Background(), llm.Messages(llm.NewUserMessage("Hello")), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hi there, how can I help you today?"}, contents)
}

func TestGenerateStreamingInvalidKey(t *testing.T) {
	srv := newTestServer(t, jsonResponse(http.StatusUnauthorized, invalidKeyBody))
	p := newTestProvider(t, srv)

	rec := &recorder{}
	contents, err := p.GenerateStreaming(context.Background(), llm.Messages(llm.NewUserMessage("Hello")), rec.sink)
	require.NoError(t, err)
	require.NotEmpty(t, contents)
	assert.True(t, strings.HasPrefix(contents[0], llm.ErrorMarker))
	assert.True(t, rec.chunks[len(rec.chunks)-1].IsFinal)
	assert.Equal(t, int32(1), srv.calls.Load())
}

func TestGenerateStreamingRetriesOpen(t *testing.T) {
	var attempts atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			jsonResponse(http.StatusServiceUnavailable, `{"error": {"message": "overloaded"}}`)(w, r)
			return
		}
		sseResponse("ok")(w, r)
	})
	p := newTestProvider(t, srv)

	contents, err := p.GenerateStreaming(context.Background(), llm.Messages(llm.NewUserMessage("Hello")), (&recorder{}).sink)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, contents)
	assert.Equal(t, int32(2), srv.calls.Load())
}

func TestGenerateStreamingStop(t *testing.T) {
	srv := newTestServer(t, sseResponse("one", "two", "three"))
	p := newTestProvider(t, srv)

	var seen []string
	contents, err := p.GenerateStreaming(context.Background(), llm.Messages(llm.NewUserMessage("Hello")),
		func(ctx context.Context, chunk llm.Chunk) error {
			seen = append(seen, chunk.Content)
			if chunk.Content == "two" {
				return llm.ErrStopStream
			}
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, contents)
	assert.Equal(t, []string{"one", "two"}, seen)
}

func TestCountTokensAndContext(t *testing.T) {
	p, err := New(llm.AdapterConfig{Model: "gpt-4-0613"})
	require.NoError(t, err)
	assert.Equal(t, 8192, p.MaxContextLength())

	tests := map[string]int{
		"gpt-4o-mini":       128000,
		"gpt-4.1-nano":      1047576,
		"gpt-4-32k":         32768,
		"gpt-3.5-turbo-16k": 16385,
		"o3-mini":           200000,
		"davinci-002":       2049,
	}
	for model, want := range tests {
		p, err := New(llm.AdapterConfig{Model: model})
		require.NoError(t, err)
		assert.Equal(t, want, p.MaxContextLength(), model)
	}
}

func TestCountTokensWithEncoding(t *testing.T) {
	tests := []struct {
		model string
		text  string
		want  int
	}{
		{model: "gpt-4-0613", text: "hello world", want: 2},
		{model: "gpt-3.5-turbo", text: "hello world", want: 2},
		{model: "gpt-4o", text: "hello world", want: 2},
		{model: "gpt-4o", text: "", want: 0},
	}
	for _, tt := range tests {
		p, err := New(llm.AdapterConfig{Model: tt.model})
		require.NoError(t, err)
		require.True(t, p.tokens.Exact(), tt.model)
		assert.Equal(t, tt.want, p.CountTokens(tt.text), tt.model)
		assert.Equal(t, p.CountTokens(tt.text), p.CountTokens(tt.text), tt.model)
	}

	p, err := New(llm.AdapterConfig{Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Greater(t, p.CountTokens("a <|endoftext|> b"), p.CountTokens("a b"), "special markers count as text")
}

func TestCountTokensFallback(t *testing.T) {
	p, err := New(llm.AdapterConfig{Model: "o3-mini"})
	require.NoError(t, err)
	assert.False(t, p.tokens.Exact())
	assert.Equal(t, 2, p.CountTokens("hello"))
	assert.Equal(t, 3, p.CountTokens("hello world"))
}

func TestNewValidates(t *testing.T) {
	_, err := New(llm.AdapterConfig{APIKey: "k"})
	require.ErrorIs(t, err, llm.ErrMissingModel)

	p, err := New(llm.AdapterConfig{Model: ModelGPT4o, Temperature: 5})
	require.NoError(t, err)
	assert.Equal(t, MaxTemperature, p.cfg.Temperature)
}
