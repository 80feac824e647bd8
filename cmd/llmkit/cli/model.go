package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/llmkit/config"
	"github.com/deepnoodle-ai/llmkit/llm"
	"github.com/deepnoodle-ai/llmkit/providers"
)

// newModel builds the adapter selected by the flags. With --config the named
// (or default) entry is used and --model, --temperature and --max-tokens
// override it when given. Without a configuration file the provider is resolved from
// --provider or inferred from --model, and the API key is read from the
// provider's environment variables.
func (g *globals) newModel(cmd *cobra.Command) (llm.LLM, error) {
	logger := g.logger()
	if g.configPath != "" {
		file, err := config.Load(g.configPath)
		if err != nil {
			return nil, err
		}
		if err := file.Validate(); err != nil {
			return nil, err
		}
		entry, err := file.Lookup(g.provider)
		if err != nil {
			return nil, err
		}
		if g.model != "" {
			entry.Model = g.model
		}
		if cmd.Flags().Changed("temperature") {
			entry.Temperature = g.temperature
		}
		if cmd.Flags().Changed("max-tokens") {
			entry.MaxOutputTokens = g.maxTokens
		}
		return entry.Build(config.WithLogger(logger))
	}

	if g.model == "" {
		return nil, fmt.Errorf("a --model or --config is required")
	}
	return providers.New(g.provider, llm.AdapterConfig{
		Model:           g.model,
		Temperature:     g.temperature,
		MaxOutputTokens: g.maxTokens,
	}, providers.Options{Logger: logger})
}

// messages builds the conversation for a prompt, prefixed by the system
// prompt when one is set.
func (g *globals) messages(prompt string) []llm.Message {
	var messages []llm.Message
	if g.system != "" {
		messages = append(messages, llm.NewSystemMessage(g.system))
	}
	return append(messages, llm.NewUserMessage(prompt))
}

// readPrompt joins the arguments, or reads stdin when there are none.
func readPrompt(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt: %w", err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("no prompt given")
	}
	return prompt, nil
}
