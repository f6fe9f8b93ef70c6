// Package fs provides file system adapters for evaluating glob patterns.
package fs

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/globfind/internal/core/domain"
	"go.trai.ch/globfind/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Matcher = (*Matcher)(nil)

// Matcher implements the Matcher interface using doublestar.
type Matcher struct{}

// NewMatcher creates a new Matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match evaluates pattern relative to opts.Cwd and returns the matches in the
// order doublestar produced them, minus anything covered by opts.Ignore.
func (m *Matcher) Match(pattern string, opts domain.GlobOptions) ([]string, error) {
	if pattern == "" {
		return []string{}, nil
	}

	// Glob cannot see through "../" or a leading "/", so the literal prefix
	// becomes the root of the fs.FS instead.
	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
	if rest == "" {
		rest = "."
	}

	root := filepath.FromSlash(base)
	if !filepath.IsAbs(root) {
		root = filepath.Join(opts.Cwd, root)
	}

	matches, err := doublestar.Glob(os.DirFS(root), rest, globOptions(opts)...)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to glob pattern"), "pattern", pattern)
	}

	result := make([]string, 0, len(matches))
	for _, match := range matches {
		rel := path.Join(base, match)
		if isIgnored(rel, opts.Ignore) {
			continue
		}
		result = append(result, filepath.FromSlash(rel))
	}

	return result, nil
}

func globOptions(opts domain.GlobOptions) []doublestar.GlobOption {
	var res []doublestar.GlobOption
	if !opts.Dot {
		res = append(res, doublestar.WithNoHidden())
	}
	if opts.NoDir {
		res = append(res, doublestar.WithFilesOnly())
	}
	if opts.NoFollow {
		res = append(res, doublestar.WithNoFollow())
	}
	if opts.NoCase {
		res = append(res, doublestar.WithCaseInsensitive())
	}
	return res
}

// isIgnored checks a slash-separated match against the ignore patterns.
// A pattern ending in "/**" also ignores the directory itself.
func isIgnored(match string, ignores []string) bool {
	for _, ignore := range ignores {
		pattern := strings.TrimPrefix(filepath.ToSlash(ignore), "./")
		if pattern == "" {
			continue
		}

		if matched, _ := doublestar.Match(pattern, match); matched {
			return true
		}

		if dir, ok := strings.CutSuffix(pattern, "/**"); ok {
			if matched, _ := doublestar.Match(dir, match); matched {
				return true
			}
		}
	}
	return false
}
