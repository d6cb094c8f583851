// Package commands implements the CLI commands for starmap.
package commands

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/starmap/internal/app"
	"go.trai.ch/starmap/internal/build"
	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for starmap.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "starmap",
		Short:         "Hex star-map toolkit: coordinates, mains, styles and map tiles",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(
		c.newHexCmd(),
		c.newLocateCmd(),
		c.newDistanceCmd(),
		c.newScaleCmd(),
		c.newMainsCmd(),
		c.newStyleCmd(),
		c.newStarfieldCmd(),
		c.newGridCmd(),
		c.newFetchCmd(),
		c.newPosterCmd(),
		c.newPurgeCmd(),
		c.newDownloadCmd(),
		c.newVersionCmd(),
	)

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

// SetOutput redirects standard and error output. Used for testing.
func (c *CLI) SetOutput(out, errOut io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(errOut)
}

// downloadOptions returns the configured options, cancelled with the
// command's context.
func (c *CLI) downloadOptions(cmd *cobra.Command) domain.DownloadOptions {
	opts := c.app.DownloadOptions()
	ctx := cmd.Context()
	opts.IsCancelled = func() bool { return ctx.Err() != nil }
	return opts
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrParse, "invalid number"), "input", s)
	}
	return v, nil
}
