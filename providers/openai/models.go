package openai

import "github.com/deepnoodle-ai/llmkit/llm"

const (
	// GPT-5 models
	ModelGPT5     = "gpt-5"
	ModelGPT5Mini = "gpt-5-mini"

	// GPT-4 models
	ModelGPT41      = "gpt-4.1"
	ModelGPT4o      = "gpt-4o"
	ModelGPT4oMini  = "gpt-4o-mini"
	ModelGPT4Turbo  = "gpt-4-turbo"
	ModelGPT4       = "gpt-4"
	ModelGPT35Turbo = "gpt-3.5-turbo"

	// o-series reasoning models
	ModelO3     = "o3"
	ModelO4Mini = "o4-mini"
)

// contextWindows maps model-name substrings to context lengths. More
// specific names come first.
var contextWindows = llm.ContextTable{
	Limits: []llm.ContextLimit{
		{Match: "gpt-4.1", Tokens: 1047576},
		{Match: "gpt-4o", Tokens: 128000},
		{Match: "gpt-4-turbo", Tokens: 128000},
		{Match: "gpt-4-32k", Tokens: 32768},
		{Match: "gpt-4", Tokens: 8192},
		{Match: "gpt-3.5-turbo-16k", Tokens: 16385},
		{Match: "gpt-3.5-turbo", Tokens: 16385},
		{Match: "gpt-5", Tokens: 400000},
		{Match: "o1", Tokens: 200000},
		{Match: "o3", Tokens: 200000},
		{Match: "o4", Tokens: 200000},
	},
	Fallback: 2049,
}
