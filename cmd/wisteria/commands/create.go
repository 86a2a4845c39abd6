package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new project directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minimal, _ := cmd.Flags().GetBool("minimal")

			root, err := c.app.Create(projectDir(cmd), args[0], minimal)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), root)
			return nil
		},
	}
	cmd.Flags().BoolP("minimal", "m", false, "Write a starter manifest without guidance comments")
	return cmd
}
