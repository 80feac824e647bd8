// Package llm defines the provider-agnostic contract for calling large
// language models.
//
//   - [LLM] is the interface every provider adapter implements: Generate,
//     GenerateStreaming, CountTokens and MaxContextLength.
//   - [Message] and [Role] describe a conversation; [Chunk] and [Sink] carry
//     streamed output back to the caller one chunk at a time.
//   - [AdapterConfig] is the immutable per-adapter configuration.
//   - [ProviderError] classifies failures as authorization, request-shape or
//     transient. Terminal failures surface as result text prefixed with
//     [ErrorMarker].
//   - [ForwardDeltas] and [StreamText] normalize native and synthetic
//     streaming into the same chunk sequence.
//
// Concrete adapters live under [github.com/deepnoodle-ai/llmkit/providers].
package llm
