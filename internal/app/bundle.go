package app

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/globfind/internal/adapters/esbuild"   //nolint:depguard // Wired in app layer
	"go.trai.ch/globfind/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/globfind/internal/core/domain"
	"go.trai.ch/zerr"
)

// BundleOptions configuration for the Bundle method.
type BundleOptions struct {
	Glob GlobFlags
	// Outfile and Outdir select where esbuild writes. With neither set nothing
	// is written and the output files are returned.
	Outfile string
	Outdir  string
	// Format is one of "esm", "cjs" or "iife". Empty means "esm".
	Format string
	Minify bool
	Trace  bool
}

// OutputFile is a file produced by the bundler.
type OutputFile struct {
	Path     string
	Contents []byte
}

var formats = map[string]api.Format{
	"":     api.FormatESModule,
	"esm":  api.FormatESModule,
	"cjs":  api.FormatCommonJS,
	"iife": api.FormatIIFE,
}

// Bundle runs esbuild on the entry points with the @find plugin installed.
// Entry points are relative to the working directory.
func (a *App) Bundle(ctx context.Context, entryPoints []string, opts BundleOptions) ([]OutputFile, error) {
	if len(entryPoints) == 0 {
		return nil, domain.ErrNoEntryPoints
	}

	format, ok := formats[opts.Format]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownFormat, "unsupported bundle format"), "format", opts.Format)
	}

	r, err := a.newResolver(opts.Glob)
	if err != nil {
		return nil, err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(domain.ErrFailedToGetCwd, err)
	}

	tracer, shutdown := a.tracerFor(opts.Trace)
	defer shutdown(ctx)

	_, span := tracer.Start(ctx, telemetry.SpanBundle)
	defer span.End()
	span.SetAttribute(telemetry.AttrEntryPoints, entryPoints)

	result := api.Build(api.BuildOptions{
		EntryPoints:       entryPoints,
		AbsWorkingDir:     workDir,
		Bundle:            true,
		Write:             opts.Outfile != "" || opts.Outdir != "",
		Outfile:           opts.Outfile,
		Outdir:            opts.Outdir,
		Format:            format,
		MinifyWhitespace:  opts.Minify,
		MinifyIdentifiers: opts.Minify,
		MinifySyntax:      opts.Minify,
		LogLevel:          api.LogLevelSilent,
		Plugins:           []api.Plugin{esbuild.Plugin(r)},
	})

	for _, warning := range api.FormatMessages(result.Warnings, api.FormatMessagesOptions{Kind: api.WarningMessage}) {
		a.logger.Warn(strings.TrimRight(warning, "\n"))
	}

	if len(result.Errors) > 0 {
		texts := make([]string, 0, len(result.Errors))
		for _, msg := range result.Errors {
			texts = append(texts, msg.Text)
		}
		err := zerr.With(errors.Join(domain.ErrBundleFailed, errors.New(strings.Join(texts, "\n"))), "errors", len(texts))
		span.RecordError(err)
		return nil, err
	}

	files := make([]OutputFile, 0, len(result.OutputFiles))
	for _, f := range result.OutputFiles {
		files = append(files, OutputFile{Path: f.Path, Contents: f.Contents})
	}
	span.SetAttribute(telemetry.AttrOutputFiles, len(files))

	return files, nil
}
