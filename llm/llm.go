package llm

import "context"

// LLM is the contract every provider adapter satisfies. Callers hold an LLM,
// never a concrete adapter.
type LLM interface {
	// Generate returns the complete response text for the conversation.
	// Authorization and request-shape failures are returned as result text
	// beginning with ErrorMarker and a nil error. A non-nil error means the
	// call failed transiently on every attempt or the context was done.
	Generate(ctx context.Context, messages []Message) (string, error)

	// GenerateStreaming delivers the response to sink one Chunk at a time and
	// returns the contents of the non-final chunks in order. With a nil sink
	// it returns the Generate result as a single element.
	GenerateStreaming(ctx context.Context, messages []Message, sink Sink) ([]string, error)

	// CountTokens returns a deterministic estimate of the tokens in text.
	CountTokens(text string) int

	// MaxContextLength returns the input plus output token budget of the
	// configured model.
	MaxContextLength() int
}
