package ports

import "go.trai.ch/globfind/internal/core/domain"

// Matcher is the pattern-matching engine the resolver delegates to.
//
//go:generate mockgen -source=matcher.go -destination=mocks/mock_matcher.go -package=mocks
type Matcher interface {
	// Match evaluates pattern in opts.Cwd and returns the matched paths in engine order.
	// Paths are relative to opts.Cwd unless the pattern is absolute.
	Match(pattern string, opts domain.GlobOptions) ([]string, error)
}
