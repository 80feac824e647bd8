package main

import (
	"github.com/deepnoodle-ai/llmkit/cmd/llmkit/cli"

	_ "github.com/deepnoodle-ai/llmkit/providers/anthropic"
	_ "github.com/deepnoodle-ai/llmkit/providers/google"
	_ "github.com/deepnoodle-ai/llmkit/providers/openai"
)

func main() {
	cli.Execute()
}
