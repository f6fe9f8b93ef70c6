package resolver_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/globfind/internal/adapters/fs"
	"go.trai.ch/globfind/internal/core/domain"
	"go.trai.ch/globfind/internal/core/ports/mocks"
	"go.trai.ch/globfind/internal/engine/resolver"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestNew_ConfigurationErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockMatcher(ctrl)

	tests := []struct {
		name    string
		opts    *domain.GlobOptions
		missing string
	}{
		{name: "nil options", opts: nil, missing: "options"},
		{name: "missing cwd", opts: &domain.GlobOptions{Ignore: []string{}}, missing: "cwd"},
		{name: "missing ignore", opts: &domain.GlobOptions{Cwd: "/src"}, missing: "ignore"},
		{name: "missing both", opts: &domain.GlobOptions{}, missing: "cwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := resolver.New(tt.opts, matcher)
			require.Error(t, err)
			assert.Nil(t, r)
			require.ErrorIs(t, err, domain.ErrConfiguration)

			zErr, ok := err.(*zerr.Error)
			require.True(t, ok, "expected *zerr.Error, got %T", err)
			assert.Equal(t, tt.missing, zErr.Metadata()["missing"])
		})
	}
}

func TestNew_NilMatcher(t *testing.T) {
	_, err := resolver.New(&domain.GlobOptions{Cwd: "/src", Ignore: []string{}}, nil)
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestNew_NoWorkAtConstruction(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No EXPECT: any matcher call fails the test.
	matcher := mocks.NewMockMatcher(ctrl)

	r, err := resolver.New(&domain.GlobOptions{Cwd: "/does/not/exist", Ignore: []string{}}, matcher)
	require.NoError(t, err)
	assert.Equal(t, domain.PluginName, r.Name())
}

func TestNew_CopiesOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockMatcher(ctrl)

	opts := &domain.GlobOptions{Cwd: "/src", Ignore: []string{"dist/**"}}
	r, err := resolver.New(opts, matcher)
	require.NoError(t, err)

	opts.Cwd = "/elsewhere"
	opts.Ignore[0] = "changed"

	matcher.EXPECT().
		Match("*.css", domain.GlobOptions{Cwd: "/src", Ignore: []string{"dist/**"}}).
		Return([]string{"app.css"}, nil)

	res, err := r.Resolve("@find/*.css")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/src", "app.css"), res.File)
	assert.Equal(t, "/src", r.Options().Cwd)
}

func TestResolve_NotHandled(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No EXPECT: unrelated identifiers must not reach the matcher.
	matcher := mocks.NewMockMatcher(ctrl)

	r, err := resolver.New(&domain.GlobOptions{Cwd: "/src", Ignore: []string{}}, matcher)
	require.NoError(t, err)

	for _, id := range []string{"react", "./app.css", "../x?raw", "@findx/y", "@find", "/abs/@find/z", ""} {
		res, err := r.Resolve(id)
		require.NoError(t, err, id)
		assert.Equal(t, domain.Resolution{}, res, id)
	}
}

func TestResolve_Mocked(t *testing.T) {
	tests := []struct {
		name        string
		identifier  string
		pattern     string
		matches     []string
		matchErr    error
		wantPath    string
		wantErrIs   error
		wantErrText string
	}{
		{
			name:       "single match",
			identifier: "@find/*.module.css",
			pattern:    "*.module.css",
			matches:    []string{"app.module.css"},
			wantPath:   filepath.Join("/project", "app.module.css"),
		},
		{
			name:       "query suffix kept",
			identifier: "@find/*.css?raw",
			pattern:    "*.css",
			matches:    []string{"file.css"},
			wantPath:   filepath.Join("/project", "file.css") + "?raw",
		},
		{
			name:       "question mark wildcard before query",
			identifier: "@find/icon-?.svg?url",
			pattern:    "icon-?.svg",
			matches:    []string{"icon-a.svg"},
			wantPath:   filepath.Join("/project", "icon-a.svg") + "?url",
		},
		{
			name:       "absolute match kept",
			identifier: "@find//elsewhere/*.css",
			pattern:    "/elsewhere/*.css",
			matches:    []string{"/elsewhere/x.css"},
			wantPath:   "/elsewhere/x.css",
		},
		{
			name:       "parent directory match",
			identifier: "@find/../shared/*.css",
			pattern:    "../shared/*.css",
			matches:    []string{"../shared/tokens.css"},
			wantPath:   filepath.Join("/", "shared", "tokens.css"),
		},
		{
			name:        "no match",
			identifier:  "@find/*.scss",
			pattern:     "*.scss",
			matches:     []string{},
			wantErrIs:   domain.ErrNoMatch,
			wantErrText: "Unable to @find pattern *.scss",
		},
		{
			name:        "no match nil slice",
			identifier:  "@find/*.scss?inline",
			pattern:     "*.scss",
			matches:     nil,
			wantErrIs:   domain.ErrNoMatch,
			wantErrText: "Unable to @find pattern *.scss",
		},
		{
			name:        "ambiguous",
			identifier:  "@find/*.css",
			pattern:     "*.css",
			matches:     []string{"b.css", "a.css"},
			wantErrIs:   domain.ErrAmbiguousMatch,
			wantErrText: "Ambiguous @find pattern *.css, found multiple matches:\n> b.css\n> a.css\nPlease use a more specific glob pattern.",
		},
		{
			name:        "engine failure",
			identifier:  "@find/[",
			pattern:     "[",
			matchErr:    errors.New("syntax error in pattern"),
			wantErrIs:   domain.ErrGlobFailed,
			wantErrText: "syntax error in pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			matcher := mocks.NewMockMatcher(ctrl)

			opts := &domain.GlobOptions{Cwd: "/project", Ignore: []string{"node_modules/**"}}
			r, err := resolver.New(opts, matcher)
			require.NoError(t, err)

			matcher.EXPECT().Match(tt.pattern, *opts).Return(tt.matches, tt.matchErr).Times(1)

			res, err := r.Resolve(tt.identifier)
			if tt.wantErrIs != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tt.wantErrIs)
				assert.Contains(t, err.Error(), tt.wantErrText)
				assert.Equal(t, domain.Resolution{}, res)
				return
			}

			require.NoError(t, err)
			assert.True(t, res.Handled)
			assert.Equal(t, tt.wantPath, res.Path())
		})
	}
}

func TestResolve_AmbiguousDetails(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockMatcher(ctrl)

	r, err := resolver.New(&domain.GlobOptions{Cwd: "/project", Ignore: []string{}}, matcher)
	require.NoError(t, err)

	matcher.EXPECT().Match("**/*.css", gomock.Any()).Return([]string{"z.css", "a/b.css", "m.css"}, nil)

	_, err = r.Resolve("@find/**/*.css?used")
	require.Error(t, err)

	var matchErr *domain.MatchError
	require.True(t, errors.As(err, &matchErr))
	assert.Equal(t, domain.AmbiguousMatch, matchErr.Kind)
	assert.Equal(t, "**/*.css", matchErr.Pattern)
	// Engine order, not sorted.
	assert.Equal(t, []string{"z.css", "a/b.css", "m.css"}, matchErr.Matches)
}

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte("content"), 0o600))
	}
}

func TestResolve_Filesystem(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir,
		"styles/file.css",
		"styles/theme.scss",
		"components/a.ts",
		"components/b.ts",
		"node_modules/lib/file.css",
	)

	r, err := resolver.New(&domain.GlobOptions{Cwd: tmpDir, Ignore: []string{"node_modules/**"}}, fs.NewMatcher())
	require.NoError(t, err)

	t.Run("single match", func(t *testing.T) {
		res, err := r.Resolve("@find/**/*.css")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmpDir, "styles", "file.css"), res.Path())
		assert.True(t, filepath.IsAbs(res.Path()))
	})

	t.Run("raw query", func(t *testing.T) {
		res, err := r.Resolve("@find/styles/*.css?raw")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmpDir, "styles", "file.css")+"?raw", res.Path())
	})

	t.Run("no match", func(t *testing.T) {
		_, err := r.Resolve("@find/*.less")
		require.ErrorIs(t, err, domain.ErrNoMatch)
		assert.Contains(t, err.Error(), "*.less")
	})

	t.Run("empty pattern", func(t *testing.T) {
		for _, id := range []string{"@find/", "@find/?raw"} {
			res, err := r.Resolve(id)
			require.ErrorIs(t, err, domain.ErrNoMatch, id)
			assert.Equal(t, domain.Resolution{}, res, id)
		}
	})

	t.Run("ambiguous", func(t *testing.T) {
		_, err := r.Resolve("@find/components/*.ts")
		require.ErrorIs(t, err, domain.ErrAmbiguousMatch)
		assert.Contains(t, err.Error(), filepath.Join("components", "a.ts"))
		assert.Contains(t, err.Error(), filepath.Join("components", "b.ts"))
	})

	t.Run("idempotent", func(t *testing.T) {
		first, err1 := r.Resolve("@find/styles/*.scss?inline")
		second, err2 := r.Resolve("@find/styles/*.scss?inline")
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, first, second)
	})
}

func TestResolve_RelativeCwd(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "src/only.css")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer func() {
		_ = os.Chdir(wd)
	}()

	r, err := resolver.New(&domain.GlobOptions{Cwd: "src", Ignore: []string{}}, fs.NewMatcher())
	require.NoError(t, err)

	res, err := r.Resolve("@find/*.css")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(filepath.Join(tmpDir, "src", "only.css"))
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(res.File)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, filepath.IsAbs(res.File))
}

func TestResolve_Concurrent(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "a.css", "b.js")

	r, err := resolver.New(&domain.GlobOptions{Cwd: tmpDir, Ignore: []string{}}, fs.NewMatcher())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := r.Resolve("@find/*.css")
			if err == nil {
				results[i] = res.Path()
			}
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, filepath.Join(tmpDir, "a.css"), got)
	}
}
