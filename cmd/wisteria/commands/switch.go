package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <configuration>",
		Short: "Select the current configuration and materialize its dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Switch(cmd.Context(), projectDir(cmd), args[0])
		},
	}
}
