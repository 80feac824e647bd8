package llm

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

// Chunk is one unit of streamed output. The last chunk of a completed stream
// has IsFinal set and no content.
type Chunk struct {
	Content string `json:"content"`
	IsFinal bool   `json:"is_final"`
}

// Sink receives chunks. It is called synchronously: the next chunk is not
// produced until the previous call returns, so a sink that blocks applies
// backpressure. Returning ErrStopStream ends the stream early without an
// error; any other error aborts the stream and is returned to the caller
// as a *CallbackError.
type Sink func(ctx context.Context, chunk Chunk) error

// ErrStopStream may be returned by a Sink to stop the stream.
var ErrStopStream = errors.New("stop stream")

// DeltaStream iterates over the incremental text deltas of a native
// provider stream.
type DeltaStream interface {
	// Next advances to the next delta. It returns false when the stream is
	// complete or an error occurred; check Err to tell them apart.
	Next(ctx context.Context) bool

	// Delta returns the text of the current event, possibly empty.
	Delta() string

	// Err returns the error that ended the stream, if any.
	Err() error

	// Close releases the underlying connection.
	Close() error
}

// ForwardDeltas drains a native stream into sink: one non-final chunk per
// non-empty delta, then one final chunk once the provider signals
// completion. The stream is always closed. It returns the forwarded
// contents in order.
func ForwardDeltas(ctx context.Context, stream DeltaStream, sink Sink) ([]string, error) {
	defer stream.Close()

	e := newEmitter(sink)
	for {
		if err := ctx.Err(); err != nil {
			return e.contents, err
		}
		if !stream.Next(ctx) {
			break
		}
		delta := stream.Delta()
		if delta == "" {
			continue
		}
		more, err := e.emit(ctx, delta)
		if err != nil || !more {
			return e.contents, err
		}
	}
	if err := stream.Err(); err != nil {
		return e.contents, err
	}
	return e.contents, e.finish(ctx)
}

// SplitChunks cuts text into word-bounded segments. Words are appended to a
// running buffer, each followed by a space; once the buffer is longer than
// threshold characters it becomes a segment with trailing whitespace
// trimmed. Any remainder forms the last segment.
func SplitChunks(text string, threshold int) []string {
	if threshold <= 0 {
		threshold = DefaultChunkThreshold
	}
	var chunks []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		current.WriteString(word)
		current.WriteByte(' ')
		if utf8.RuneCountInString(current.String()) > threshold {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}
	return chunks
}

// EmitChunks delivers each segment as a non-final chunk followed by one empty
// final chunk. It returns the delivered contents in order.
func EmitChunks(ctx context.Context, chunks []string, sink Sink) ([]string, error) {
	e := newEmitter(sink)
	for _, chunk := range chunks {
		more, err := e.emit(ctx, chunk)
		if err != nil || !more {
			return e.contents, err
		}
	}
	return e.contents, e.finish(ctx)
}

// StreamText simulates streaming for a response that is already complete.
func StreamText(ctx context.Context, text string, threshold int, sink Sink) ([]string, error) {
	return EmitChunks(ctx, SplitChunks(text, threshold), sink)
}

type emitter struct {
	sink     Sink
	contents []string
}

func newEmitter(sink Sink) *emitter {
	if sink == nil {
		sink = func(context.Context, Chunk) error { return nil }
	}
	return &emitter{sink: sink, contents: []string{}}
}

// emit sends one non-final chunk. It reports false when the stream must not
// continue.
func (e *emitter) emit(ctx context.Context, content string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := e.sink(ctx, Chunk{Content: content}); err != nil {
		if errors.Is(err, ErrStopStream) {
			return false, nil
		}
		return false, &CallbackError{Err: err}
	}
	e.contents = append(e.contents, content)
	return true, nil
}

func (e *emitter) finish(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.sink(ctx, Chunk{IsFinal: true}); err != nil && !errors.Is(err, ErrStopStream) {
		return &CallbackError{Err: err}
	}
	return nil
}

// ChannelSink returns a Sink that hands every chunk to ch, blocking until a
// receiver takes it or ctx is done.
func ChannelSink(ch chan<- Chunk) Sink {
	return func(ctx context.Context, chunk Chunk) error {
		select {
		case ch <- chunk:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
