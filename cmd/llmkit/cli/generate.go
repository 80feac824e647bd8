package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/llmkit/llm"
)

func newGenerateCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [prompt]",
		Short: "Generate a complete response",
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := readPrompt(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			model, err := g.newModel(cmd)
			if err != nil {
				return err
			}
			text, err := model.Generate(cmd.Context(), g.messages(prompt))
			if err != nil {
				return err
			}
			if strings.HasPrefix(text, llm.ErrorMarker) {
				fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Sprint(text))
				return &exitError{code: 2}
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
