// Package resolver implements the @find resolution hook.
package resolver

import (
	"errors"
	"path/filepath"

	"go.trai.ch/globfind/internal/core/domain"
	"go.trai.ch/globfind/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver claims module identifiers starting with domain.Prefix and resolves
// the glob pattern they carry to exactly one file.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	opts    domain.GlobOptions
	matcher ports.Matcher
}

// New validates opts and returns a Resolver bound to a private copy of them.
// Both Cwd and Ignore are required even where the engine could default them.
func New(opts *domain.GlobOptions, matcher ports.Matcher) (*Resolver, error) {
	if opts == nil {
		return nil, configurationError("options")
	}
	if opts.Cwd == "" {
		return nil, configurationError("cwd")
	}
	if opts.Ignore == nil {
		return nil, configurationError("ignore")
	}
	if matcher == nil {
		return nil, configurationError("matcher")
	}

	return &Resolver{
		opts:    opts.Clone(),
		matcher: matcher,
	}, nil
}

func configurationError(field string) error {
	return zerr.With(zerr.Wrap(domain.ErrConfiguration, "invalid glob options"), "missing", field)
}

// Name returns the plugin name registered with the host bundler.
func (r *Resolver) Name() string {
	return domain.PluginName
}

// Options returns a copy of the options the resolver was built with.
func (r *Resolver) Options() domain.GlobOptions {
	return r.opts.Clone()
}

// Resolve is the resolution hook. Identifiers without the reserved prefix
// return the zero Resolution and never touch the filesystem.
func (r *Resolver) Resolve(identifier string) (domain.Resolution, error) {
	if !domain.HasPrefix(identifier) {
		return domain.Resolution{}, nil
	}

	moduleID, query := domain.SplitIdentifier(identifier)
	pattern := moduleID[len(domain.Prefix):]

	matches, err := r.matcher.Match(pattern, r.opts.Clone())
	if err != nil {
		return domain.Resolution{}, zerr.With(errors.Join(domain.ErrGlobFailed, err), "pattern", pattern)
	}

	switch len(matches) {
	case 0:
		return domain.Resolution{}, zerr.With(&domain.MatchError{
			Kind:    domain.NoMatch,
			Pattern: pattern,
		}, "pattern", pattern)
	case 1:
		file, err := r.absolute(matches[0])
		if err != nil {
			return domain.Resolution{}, err
		}
		return domain.Resolution{Handled: true, File: file, Query: query}, nil
	default:
		return domain.Resolution{}, zerr.With(&domain.MatchError{
			Kind:    domain.AmbiguousMatch,
			Pattern: pattern,
			Matches: matches,
		}, "matches", len(matches))
	}
}

func (r *Resolver) absolute(match string) (string, error) {
	if filepath.IsAbs(match) {
		return filepath.Clean(match), nil
	}
	abs, err := filepath.Abs(filepath.Join(r.opts.Cwd, match))
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrFailedToGetCwd, err), "cwd", r.opts.Cwd)
	}
	return abs, nil
}
