package commands

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.trai.ch/globfind/internal/app"
	"go.trai.ch/globfind/internal/ui/output"
	"go.trai.ch/globfind/internal/ui/style"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <identifier>...",
		Short: "Resolve @find/ identifiers and print the file each one points to",
		Example: `  globfind resolve '@find/**/*.module.css'
  globfind resolve --ignore 'node_modules/**' '@find/styles/*.css?raw'`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			results, err := c.app.Resolve(cmd.Context(), args, app.ResolveOptions{
				Glob:  globFlags(cmd),
				Trace: traceFlag(cmd),
			})
			printResults(cmd.OutOrStdout(), results)
			return err
		},
	}
}

// printResults writes one line per identifier that did not fail.
// Failures are reported through the returned error instead.
func printResults(w io.Writer, results []app.Result) {
	profile := termenv.Ascii
	if output.IsTerminal(w) {
		profile = output.ColorProfile()
	}
	out := output.NewWithProfile(w, func() termenv.Profile { return profile })

	for _, res := range results {
		switch {
		case res.Err != nil:
			continue
		case !res.Resolution.Handled:
			_, _ = fmt.Fprintf(out, "%s %s\n",
				res.Identifier,
				out.String("(not handled)").Foreground(termenv.RGBColor(string(style.Slate))))
		default:
			_, _ = fmt.Fprintf(out, "%s %s %s\n",
				out.String(res.Identifier).Foreground(termenv.RGBColor(string(style.Iris))),
				arrow(profile),
				out.String(res.Resolution.Path()).Foreground(termenv.RGBColor(string(style.Green))))
		}
	}
}

func arrow(profile termenv.Profile) string {
	if profile == termenv.Ascii {
		return "->"
	}
	return style.Arrow
}
