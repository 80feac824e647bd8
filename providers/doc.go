// Package providers contains the plumbing shared by every LLM adapter: HTTP
// status classification, the [Caller] that wraps outbound calls in the
// retry policy and streaming normalizer, and the provider registry.
//
// Providers self-register via init() functions using [Register]. The
// registry resolves a provider by name, or by model name using matchers
// such as [PrefixMatcher] and [ContainsMatcher].
//
// Individual providers are in subpackages:
//
//   - [github.com/deepnoodle-ai/llmkit/providers/openai] - OpenAI Chat Completions
//   - [github.com/deepnoodle-ai/llmkit/providers/google] - Gemini models
//   - [github.com/deepnoodle-ai/llmkit/providers/anthropic] - Claude models
package providers
