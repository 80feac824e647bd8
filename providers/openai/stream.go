package openai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/ssestream"
)

// chunkStream adapts a chat completion SSE stream to llm.DeltaStream.
type chunkStream struct {
	stream *ssestream.Stream[openai.ChatCompletionChunk]
	delta  string
}

func newChunkStream(stream *ssestream.Stream[openai.ChatCompletionChunk]) *chunkStream {
	return &chunkStream{stream: stream}
}

func (s *chunkStream) Next(ctx context.Context) bool {
	if !s.stream.Next() {
		return false
	}
	s.delta = ""
	if chunk := s.stream.Current(); len(chunk.Choices) > 0 {
		s.delta = chunk.Choices[0].Delta.Content
	}
	return true
}

func (s *chunkStream) Delta() string {
	return s.delta
}

func (s *chunkStream) Err() error {
	return classifyError(s.stream.Err())
}

func (s *chunkStream) Close() error {
	return s.stream.Close()
}
