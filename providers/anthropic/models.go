package anthropic

import "github.com/deepnoodle-ai/llmkit/llm"

const (
	// Claude 3.5 models
	ModelClaude35Haiku20241022  = "claude-3-5-haiku-20241022"
	ModelClaude35Sonnet20241022 = "claude-3-5-sonnet-20241022"
	ModelClaude37Sonnet20250219 = "claude-3-7-sonnet-20250219"

	// Claude 4 models
	ModelClaudeSonnet420250514 = "claude-sonnet-4-20250514"
	ModelClaudeOpus420250514   = "claude-opus-4-20250514"

	// Claude 4.5 models (latest, without date suffix)
	ModelClaudeHaiku45  = "claude-haiku-4-5"
	ModelClaudeSonnet45 = "claude-sonnet-4-5"
	ModelClaudeOpus45   = "claude-opus-4-5"
)

var contextWindows = llm.ContextTable{
	Limits: []llm.ContextLimit{
		{Match: "claude", Tokens: 200000},
	},
	Fallback: 100000,
}
