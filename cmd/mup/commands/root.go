// Package commands implements the CLI commands for mup.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/dxbednarczyk/mup/internal/app"
	"github.com/dxbednarczyk/mup/internal/build"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for mup.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	InitServer(minecraftVersion, loader string) (*domain.Lockfile, error)
	SignEULA() error
	AddProject(ctx context.Context, id string, opts app.AddOptions) ([]domain.Entry, error)
	RemoveProject(id string, opts app.RemoveOptions) ([]domain.Entry, error)
	ListProjects() (*domain.Lockfile, error)
	VerifyProjects(ctx context.Context) ([]domain.VerifyResult, error)
	History(limit int) ([]domain.HistoryRecord, error)
	FetchLoader(ctx context.Context, name, minecraftVersion, version string) (string, error)
	SetVerbose(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "mup",
		Short:         "A swiss army knife for Minecraft servers",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug output")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		c.app.SetVerbose(verbose)
	}

	rootCmd.AddCommand(c.newServerCmd())
	rootCmd.AddCommand(c.newProjectCmd())
	rootCmd.AddCommand(c.newLoaderCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
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
