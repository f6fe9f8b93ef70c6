// Package commands implements the CLI commands for globfind.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/globfind/internal/app"
	"go.trai.ch/globfind/internal/build"
)

// CLI represents the command line interface for globfind.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Resolve(ctx context.Context, identifiers []string, opts app.ResolveOptions) ([]app.Result, error)
	Bundle(ctx context.Context, entryPoints []string, opts app.BundleOptions) ([]app.OutputFile, error)
	SetJSONLogs(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "globfind",
		Short:         "Resolve @find/ glob imports to exactly one file",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to globfind.yaml (default: discovered from the working directory)")
	flags.String("cwd", "", "Base directory patterns are evaluated in")
	flags.StringSlice("ignore", nil, "Glob patterns to exclude; pass --ignore= to ignore nothing")
	flags.Bool("dot", false, "Let wildcards match names starting with a dot")
	flags.Bool("nodir", false, "Only match files")
	flags.Bool("nofollow", false, "Do not follow symlinked directories")
	flags.Bool("nocase", false, "Match case-insensitively")
	flags.Bool("json", false, "Write logs as JSON")
	flags.Bool("trace", false, "Log every traced operation with its duration")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if jsonLogs, _ := cmd.Flags().GetBool("json"); jsonLogs {
			c.app.SetJSONLogs(true)
		}
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newBundleCmd())
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

// globFlags reads the persistent glob flags. Flags left unset do not override the config file.
func globFlags(cmd *cobra.Command) app.GlobFlags {
	flags := cmd.Flags()

	var g app.GlobFlags
	g.ConfigPath, _ = flags.GetString("config")
	g.Cwd, _ = flags.GetString("cwd")
	if flags.Changed("ignore") {
		g.Ignore, _ = flags.GetStringSlice("ignore")
		if g.Ignore == nil {
			g.Ignore = []string{}
		}
	}
	g.Dot = changedBool(cmd, "dot")
	g.NoDir = changedBool(cmd, "nodir")
	g.NoFollow = changedBool(cmd, "nofollow")
	g.NoCase = changedBool(cmd, "nocase")
	return g
}

func changedBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

func traceFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("trace")
	return v
}
