package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/globfind/internal/app"
)

func (c *CLI) newBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle <entry>...",
		Short: "Bundle entry points with esbuild, resolving @find/ imports",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			outfile, _ := cmd.Flags().GetString("outfile")
			outdir, _ := cmd.Flags().GetString("outdir")
			format, _ := cmd.Flags().GetString("format")
			minify, _ := cmd.Flags().GetBool("minify")

			files, err := c.app.Bundle(cmd.Context(), args, app.BundleOptions{
				Glob:    globFlags(cmd),
				Outfile: outfile,
				Outdir:  outdir,
				Format:  format,
				Minify:  minify,
				Trace:   traceFlag(cmd),
			})
			if err != nil {
				return err
			}

			cmdo := cmd.OutOrStdout()
			for _, f := range files {
				if outfile == "" && outdir == "" {
					_, _ = cmdo.Write(f.Contents)
					continue
				}
				_, _ = fmt.Fprintln(cmdo, f.Path)
			}
			return nil
		},
	}
	cmd.Flags().StringP("outfile", "o", "", "Write the bundle to this file")
	cmd.Flags().String("outdir", "", "Write the bundles to this directory")
	cmd.Flags().String("format", "esm", "Output format: esm, cjs, or iife")
	cmd.Flags().Bool("minify", false, "Minify the output")
	return cmd
}
