package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTokensCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [text]",
		Short: "Estimate the tokens in text for the selected model",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readPrompt(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			model, err := g.newModel(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d\n", headerStyle.Sprint("tokens:"), model.CountTokens(text))
			fmt.Fprintf(out, "%s %d\n", headerStyle.Sprint("context:"), model.MaxContextLength())
			return nil
		},
	}
}
