package google

import "github.com/deepnoodle-ai/llmkit/llm"

const (
	// Gemini 2.5 models
	ModelGemini25Pro       = "gemini-2.5-pro"
	ModelGemini25Flash     = "gemini-2.5-flash"
	ModelGemini25FlashLite = "gemini-2.5-flash-lite"

	// Gemini 2.0 models
	ModelGemini20Flash = "gemini-2.0-flash"

	// Gemini 1.x models
	ModelGemini15Pro   = "gemini-1.5-pro"
	ModelGemini15Flash = "gemini-1.5-flash"
	ModelGeminiPro     = "gemini-pro"
)

var contextWindows = llm.ContextTable{
	Limits: []llm.ContextLimit{
		{Match: "gemini-1.5", Tokens: 1048576},
		{Match: "gemini-2", Tokens: 1048576},
		{Match: "gemini-pro", Tokens: 32768},
	},
	Fallback: 8192,
}
