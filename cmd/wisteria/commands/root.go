// Package commands implements the CLI commands for the wisteria build tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Khyonie/Wisteria/internal/build"
	"github.com/Khyonie/Wisteria/internal/core/ports"
)

// CLI represents the command line interface for wisteria.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Create(dir, name string, minimal bool) (string, error)
	Switch(ctx context.Context, dir, configuration string) error
	Refresh(ctx context.Context, dir string) error
	Update(ctx context.Context, dir, name string) error
	Build(ctx context.Context, dir, configuration string) ([]string, error)
	Info(dir string) (string, error)
}

// New creates a new CLI instance with the given app.
func New(a Application, logger ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "wisteria",
		Short:         "A project manager and build tool for Java projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.PersistentFlags().StringP("project", "p", ".", "Project directory (searched upward for the manifest)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug output")
	rootCmd.PersistentFlags().BoolP("silent", "s", false, "Suppress everything except errors")

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logger:  logger,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		c.configureLogger(cmd)
	}

	rootCmd.AddCommand(c.newCreateCmd())
	rootCmd.AddCommand(c.newSwitchCmd())
	rootCmd.AddCommand(c.newRefreshCmd())
	rootCmd.AddCommand(c.newUpdateCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newInfoCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// configureLogger applies the global verbosity flags. Silent wins when
// both are set.
func (c *CLI) configureLogger(cmd *cobra.Command) {
	if c.logger == nil {
		return
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	silent, _ := cmd.Flags().GetBool("silent")

	switch {
	case silent:
		c.logger.SetLevel(ports.LevelSilent)
	case verbose:
		c.logger.SetLevel(ports.LevelDebug)
	}
}

// projectDir returns the directory the manifest search starts from.
func projectDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("project")
	if dir == "" {
		return "."
	}
	return dir
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
