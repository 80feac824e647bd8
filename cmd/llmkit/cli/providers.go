package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/llmkit/config"
	"github.com/deepnoodle-ai/llmkit/providers"
)

func newProvidersCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List registered and configured providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			registry := providers.DefaultRegistry()

			fmt.Fprintln(out, headerStyle.Sprint("Registered providers"))
			for _, name := range registry.Names() {
				entry, _ := registry.Lookup(name)
				fmt.Fprintf(out, "  %s %s %s\n", bullet, name,
					mutedStyle.Sprintf("(%s)", strings.Join(entry.EnvKeys, ", ")))
			}

			if g.configPath == "" {
				return nil
			}
			file, err := config.Load(g.configPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, headerStyle.Sprint("Configured providers"))
			def, _ := file.Lookup("")
			for _, p := range file.Providers {
				name := p.Name
				if name == "" {
					name = p.Type
				}
				marker := " "
				if def.Name == p.Name && def.Type == p.Type {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s %s %s\n", marker, bullet, name, mutedStyle.Sprint(p.Model))
			}
			return nil
		},
	}
}
