package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/llmkit/slogger"
)

// globals holds the values of the persistent flags.
type globals struct {
	configPath  string
	provider    string
	model       string
	system      string
	temperature float64
	maxTokens   int
	logLevel    string
	logJSON     bool
}

// NewRootCommand builds the llmkit command tree.
func NewRootCommand() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "llmkit",
		Short: "Talk to LLM providers through one interface",
		Long: `llmkit sends prompts to OpenAI, Google Gemini and Anthropic models through
a single adapter contract. Providers are selected by name or inferred from the
model, and may be described in a YAML, JSON or TOML configuration file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&g.configPath, "config", "c", os.Getenv("LLMKIT_CONFIG"), "configuration file or directory")
	flags.StringVarP(&g.provider, "provider", "p", os.Getenv("LLMKIT_PROVIDER"), "provider name (openai, google, anthropic)")
	flags.StringVarP(&g.model, "model", "m", os.Getenv("LLMKIT_MODEL"), "model name")
	flags.StringVarP(&g.system, "system", "s", "", "system prompt")
	flags.Float64VarP(&g.temperature, "temperature", "t", 0, "sampling temperature")
	flags.IntVar(&g.maxTokens, "max-tokens", 0, "maximum output tokens")
	flags.StringVar(&g.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.BoolVar(&g.logJSON, "log-json", false, "write logs as JSON")

	root.AddCommand(
		newGenerateCommand(g),
		newStreamCommand(g),
		newTokensCommand(g),
		newProvidersCommand(g),
	)
	return root
}

// logger returns the logger selected by the log flags. Logs go to stderr.
func (g *globals) logger() slogger.Logger {
	return slogger.NewWithOptions(slogger.Options{
		Level: slogger.LevelFromString(g.logLevel),
		JSON:  g.logJSON,
	})
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, errorStyle.Sprint("Error: ")+err.Error())
		os.Exit(1)
	}
}

// exitError carries an exit code for failures that were already reported.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}
