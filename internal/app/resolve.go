package app

import (
	"context"
	"errors"
	"runtime"

	"go.trai.ch/globfind/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/globfind/internal/core/domain"
	"go.trai.ch/globfind/internal/core/ports"
	"go.trai.ch/globfind/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ResolveOptions configuration for the Resolve method.
type ResolveOptions struct {
	Glob GlobFlags
	// Trace logs every finished span with its duration.
	Trace bool
}

// Result is the outcome for a single identifier.
type Result struct {
	Identifier string
	Resolution domain.Resolution
	Err        error
}

// Resolve resolves every identifier concurrently. Results keep the input order.
// The returned error joins the errors of all failed identifiers.
func (a *App) Resolve(ctx context.Context, identifiers []string, opts ResolveOptions) ([]Result, error) {
	if len(identifiers) == 0 {
		return nil, domain.ErrNoIdentifiers
	}

	r, err := a.newResolver(opts.Glob)
	if err != nil {
		return nil, err
	}

	tracer, shutdown := a.tracerFor(opts.Trace)
	defer shutdown(ctx)

	results := make([]Result, len(identifiers))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, id := range identifiers {
		g.Go(func() error {
			results[i] = resolveOne(ctx, tracer, r, id)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	if len(errs) > 0 {
		return results, zerr.With(errors.Join(domain.ErrResolutionFailed, errors.Join(errs...)), "failed", len(errs))
	}

	return results, nil
}

func resolveOne(ctx context.Context, tracer ports.Tracer, r *resolver.Resolver, id string) Result {
	if err := ctx.Err(); err != nil {
		return Result{Identifier: id, Err: err}
	}

	_, span := tracer.Start(ctx, telemetry.SpanResolve)
	defer span.End()
	span.SetAttribute(telemetry.AttrIdentifier, id)

	res, err := r.Resolve(id)
	if err != nil {
		span.RecordError(err)
		span.SetAttribute(telemetry.AttrOutcome, outcome(err))

		var matchErr *domain.MatchError
		if errors.As(err, &matchErr) {
			span.SetAttribute(telemetry.AttrPattern, matchErr.Pattern)
			span.SetAttribute(telemetry.AttrMatches, len(matchErr.Matches))
		}
		return Result{Identifier: id, Err: err}
	}

	if !res.Handled {
		span.SetAttribute(telemetry.AttrOutcome, "not_handled")
		return Result{Identifier: id, Resolution: res}
	}

	span.SetAttribute(telemetry.AttrOutcome, "resolved")
	span.SetAttribute(telemetry.AttrFile, res.File)
	return Result{Identifier: id, Resolution: res}
}

func outcome(err error) string {
	var matchErr *domain.MatchError
	if errors.As(err, &matchErr) {
		return matchErr.Kind.String()
	}
	return "error"
}

// tracerFor returns the injected tracer, or a tracer that logs each span when trace is set.
func (a *App) tracerFor(trace bool) (ports.Tracer, func(context.Context)) {
	if !trace {
		return a.tracer, func(context.Context) {}
	}

	traced := telemetry.NewOTelTracer(domain.PluginName, telemetry.NewBridge(a.logger))
	return traced, func(ctx context.Context) {
		_ = traced.Shutdown(context.WithoutCancel(ctx))
	}
}
