package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/llmkit/llm"
)

func newStreamCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "stream [prompt]",
		Short: "Stream a response as it is generated",
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := readPrompt(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			model, err := g.newModel(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			sink := func(ctx context.Context, chunk llm.Chunk) error {
				if chunk.IsFinal {
					fmt.Fprintln(out)
					return nil
				}
				_, err := outputStyle.Fprint(out, chunk.Content)
				return err
			}
			if _, err := model.GenerateStreaming(ctx, g.messages(prompt), sink); err != nil {
				if ctx.Err() != nil {
					fmt.Fprintln(cmd.ErrOrStderr())
					fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Sprint("interrupted"))
					return &exitError{code: 130}
				}
				return err
			}
			return nil
		},
	}
}
