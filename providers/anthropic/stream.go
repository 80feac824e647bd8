package anthropic

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"
)

// eventStream adapts a Messages API event stream to llm.DeltaStream. Only
// text deltas carry content; every other event has an empty delta.
type eventStream struct {
	stream *ssestream.Stream[anthropic.MessageStreamEventUnion]
	delta  string
}

func newEventStream(stream *ssestream.Stream[anthropic.MessageStreamEventUnion]) *eventStream {
	return &eventStream{stream: stream}
}

func (s *eventStream) Next(ctx context.Context) bool {
	if !s.stream.Next() {
		return false
	}
	s.delta = ""
	if event, ok := s.stream.Current().AsAny().(anthropic.ContentBlockDeltaEvent); ok {
		if text, ok := event.Delta.AsAny().(anthropic.TextDelta); ok {
			s.delta = text.Text
		}
	}
	return true
}

func (s *eventStream) Delta() string {
	return s.delta
}

func (s *eventStream) Err() error {
	return classifyError(s.stream.Err())
}

func (s *eventStream) Close() error {
	return s.stream.Close()
}
