// Package commands implements the CLI commands for refgraph.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/refgraph/internal/app"
	"go.trai.ch/refgraph/internal/build"
	"go.trai.ch/refgraph/internal/core/domain"
)

// CLI represents the command line interface for refgraph.
type CLI struct {
	app     Application
	logging LoggingConfigurer
	rootCmd *cobra.Command
	flags   globalFlags
}

type globalFlags struct {
	configuration string
	platform      string
	workspace     string
	metrics       string
	verbose       bool
	jsonLogs      bool
}

// Application represents the application logic interface.
type Application interface {
	Resolve(ctx context.Context, path string, opts app.Options) (*app.ResolveResult, error)
	Outputs(ctx context.Context, path string, opts app.Options) (*app.OutputsResult, error)
	Stale(ctx context.Context, path string, opts app.Options) (*app.StaleResult, error)
	Plan(ctx context.Context, path string, opts app.Options) (*domain.BuildPlan, error)
	Graph(ctx context.Context, path string, opts app.Options) ([]domain.ProjectVertex, error)
	Watch(ctx context.Context, path string, opts app.Options, onPlan func(*domain.BuildPlan, error)) error
	SnapshotRegistry(ctx context.Context, dir, out string) (int, error)
	ServeRegistry(ctx context.Context, settings domain.RegistrySettings, r io.Reader, w io.Writer) error
}

// LoggingConfigurer applies the logging flags.
type LoggingConfigurer interface {
	ConfigureLogging(verbose, jsonLogs bool)
}

// New creates a new CLI instance with the given app. logging may be nil.
func New(a Application, logging LoggingConfigurer) *CLI {
	rootCmd := &cobra.Command{
		Use:           "refgraph",
		Short:         "Resolve project references, output sets and staleness",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	c := &CLI{
		app:     a,
		logging: logging,
		rootCmd: rootCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&c.flags.configuration, "config", "c", "", `Configuration as "Name" or "Name|Platform"`)
	pf.StringVarP(&c.flags.platform, "platform", "p", "", "Platform, overriding the one in --config")
	pf.StringVarP(&c.flags.workspace, "workspace", "w", "", "Directory to start the workspace file search from")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&c.flags.jsonLogs, "json-logs", false, "Write logs as JSON")
	pf.StringVar(&c.flags.metrics, "metrics", "", "Write engine counters to this file in Prometheus text format")

	// Persistent flags come first: -v belongs to --verbose, so --version gets no shorthand.
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentPreRun = func(*cobra.Command, []string) {
		if c.logging != nil {
			c.logging.ConfigureLogging(c.flags.verbose, c.flags.jsonLogs)
		}
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newOutputsCmd())
	rootCmd.AddCommand(c.newStaleCmd())
	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newGraphCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newRegistryCmd())
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

// SetInput sets the input stream for the root command. Used for testing.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}

func (c *CLI) options() app.Options {
	return app.Options{
		Configuration: c.flags.configuration,
		Platform:      c.flags.platform,
		Workspace:     c.flags.workspace,
		MetricsFile:   c.flags.metrics,
	}
}
