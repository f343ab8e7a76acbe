// Package cli implements the dirpulse command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/idelchi/dirpulse/internal/config"
	"github.com/idelchi/dirpulse/internal/scaffold"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Execute runs the CLI with the process arguments. SIGINT and SIGTERM stop
// the scan early; the statistics gathered so far are still printed.
func (c CLI) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.Command().ExecuteContext(ctx)
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var (
		configPath string
		initConfig bool
	)

	cmd := &cobra.Command{
		Use:   "dirpulse [flags] [path]",
		Short: "Summarize size, extensions and age of a directory tree",
		Long: heredoc.Doc(`
			dirpulse scans a directory tree once and reports aggregate statistics:
			total size and counts, the largest files, a per-extension histogram
			and an age breakdown by last modification time.

			Age buckets:
			  fresh   modified less than 30 days ago
			  aging   modified between 30 days and 6 months ago
			  stale   modified 6 months ago or earlier

			Settings are read from flags, DIRPULSE_* environment variables and
			a .dirpulse.yaml file in the working or home directory, in that order.
			Use --init to print a configuration file with the effective settings.
		`),
		Example: heredoc.Doc(`
			dirpulse ~/Downloads
			dirpulse -n 25 --hidden .
			dirpulse -o json -e 'node_modules/' src
		`),
		Args:          cobra.MaximumNArgs(1),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath, cmd.Flags())
			if err != nil {
				return err
			}

			if initConfig {
				rendered, err := scaffold.Render(*cfg)
				if err != nil {
					return fmt.Errorf("rendering config scaffold: %w", err)
				}

				_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)

				return err
			}

			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			return logic(cmd.Context(), *cfg, path, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.IntP("top-size", "n", config.DefaultTopSize, "Number of largest files to report")
	flags.StringP("output", "o", config.DefaultOutput, "Output format: table, json or yaml")
	flags.Bool("hidden", config.DefaultHidden, "Include entries whose name starts with a dot")
	flags.Bool("follow", config.DefaultFollow, "Follow symbolic links")
	flags.StringSliceP("exclude", "e", []string{}, "Regex patterns to exclude")
	flags.IntP("depth", "d", config.DefaultDepth, "Maximum traversal depth (0=unlimited)")
	flags.String("walker", config.DefaultWalker, "Traversal backend: fastwalk or afero")
	flags.Bool("debug", config.DefaultDebug, "Enable debug output")
	flags.Bool("no-color", config.DefaultNoColor, "Disable colored output")
	flags.StringVarP(&configPath, "config", "c", "", "Path to a config file")
	flags.BoolVarP(&initConfig, "init", "i", false, "Print a config file with the effective settings and exit")

	return cmd
}
