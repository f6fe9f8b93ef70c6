package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrConfiguration is returned when the resolver is constructed without a usable configuration.
	ErrConfiguration = zerr.New("you must provide glob options (at least `cwd` and `ignore`) to configure the glob search")

	// ErrNoMatch is returned when a claimed pattern matches no file.
	ErrNoMatch = zerr.New("unable to @find pattern")

	// ErrAmbiguousMatch is returned when a claimed pattern matches more than one file.
	ErrAmbiguousMatch = zerr.New("ambiguous @find pattern")

	// ErrGlobFailed is returned when the pattern-matching engine cannot evaluate a pattern.
	ErrGlobFailed = zerr.New("failed to evaluate glob pattern")

	// ErrFailedToGetCwd is returned when the base directory cannot be made absolute.
	ErrFailedToGetCwd = zerr.New("failed to get absolute path of glob cwd")

	// ErrNoIdentifiers is returned when the resolve command receives no identifiers.
	ErrNoIdentifiers = zerr.New("no identifiers specified")

	// ErrNoEntryPoints is returned when the bundle command receives no entry points.
	ErrNoEntryPoints = zerr.New("no entry points specified")

	// ErrBundleFailed is returned when the bundler reports errors.
	ErrBundleFailed = zerr.New("bundle failed")

	// ErrUnknownFormat is returned when the bundle output format is not recognized.
	ErrUnknownFormat = zerr.New("unknown output format")

	// ErrResolutionFailed is returned when at least one identifier could not be resolved.
	ErrResolutionFailed = zerr.New("resolution failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")
)

// MatchErrorKind tells the two per-request failure modes apart.
type MatchErrorKind int

const (
	// NoMatch means the pattern matched zero files.
	NoMatch MatchErrorKind = iota
	// AmbiguousMatch means the pattern matched two or more files.
	AmbiguousMatch
)

// String returns the name of the kind.
func (k MatchErrorKind) String() string {
	switch k {
	case NoMatch:
		return "no_match"
	case AmbiguousMatch:
		return "ambiguous_match"
	default:
		return "unknown"
	}
}

// MatchError is the error returned by a handled resolution that did not
// produce exactly one file. It matches ErrNoMatch or ErrAmbiguousMatch with
// errors.Is, depending on Kind.
type MatchError struct {
	Kind    MatchErrorKind
	Pattern string
	// Matches holds every matched path in engine order. Empty for NoMatch.
	Matches []string
}

// Error implements the error interface.
func (e *MatchError) Error() string {
	if e.Kind == AmbiguousMatch {
		return "Ambiguous @find pattern " + e.Pattern + ", found multiple matches:\n> " +
			strings.Join(e.Matches, "\n> ") +
			"\nPlease use a more specific glob pattern."
	}
	return "Unable to @find pattern " + e.Pattern
}

// Is reports whether target is the sentinel for this error's kind.
func (e *MatchError) Is(target error) bool {
	switch e.Kind {
	case NoMatch:
		return target == ErrNoMatch
	case AmbiguousMatch:
		return target == ErrAmbiguousMatch
	default:
		return false
	}
}
