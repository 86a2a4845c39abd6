package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build [configuration]",
		Short: "Compile and package a configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configuration := ""
			if len(args) == 1 {
				configuration = args[0]
			}

			targets, err := c.app.Build(cmd.Context(), projectDir(cmd), configuration)
			if err != nil {
				return err
			}
			for _, target := range targets {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), target)
			}
			return nil
		},
	}
}
