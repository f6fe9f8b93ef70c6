package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/globfind/internal/adapters/fs"
	"go.trai.ch/globfind/internal/adapters/telemetry"
	"go.trai.ch/globfind/internal/app"
	"go.trai.ch/globfind/internal/core/domain"
	"go.trai.ch/globfind/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app      *app.App
	loader   *mocks.MockConfigLoader
	logger   *mocks.MockLogger
	recorder *tracetest.SpanRecorder
	dir      string
}

// newFixture changes into a fresh temp dir holding files and builds an App
// around a mocked config loader and the real doublestar matcher.
func newFixture(t *testing.T, files ...string) *fixture {
	t.Helper()

	dir := t.TempDir()
	dir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte("export default 1;\n"), 0o600))
	}
	t.Chdir(dir)

	ctrl := gomock.NewController(t)
	recorder := tracetest.NewSpanRecorder()
	f := &fixture{
		loader:   mocks.NewMockConfigLoader(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		recorder: recorder,
		dir:      dir,
	}
	f.app = app.New(f.loader, fs.NewMatcher(), f.logger, telemetry.NewOTelTracer("test", recorder))
	return f
}

func (f *fixture) withConfig(opts *domain.GlobOptions) {
	path := filepath.Join(f.dir, domain.ConfigFileName)
	f.loader.EXPECT().DiscoverConfigPath(f.dir).Return(path, nil)
	f.loader.EXPECT().Load(path).Return(opts, nil)
}

func (f *fixture) withoutConfig() {
	f.loader.EXPECT().DiscoverConfigPath(f.dir).Return("", nil)
}

func TestApp_LoadOptions(t *testing.T) {
	t.Run("no config file defaults cwd to working dir", func(t *testing.T) {
		f := newFixture(t)
		f.withoutConfig()

		opts, err := f.app.LoadOptions(app.GlobFlags{})
		require.NoError(t, err)
		assert.Equal(t, f.dir, opts.Cwd)
		assert.Nil(t, opts.Ignore)
	})

	t.Run("flags override config", func(t *testing.T) {
		f := newFixture(t)
		f.withConfig(&domain.GlobOptions{Cwd: "/from/config", Ignore: []string{"dist/**"}, NoDir: true})

		yes, no := true, false
		opts, err := f.app.LoadOptions(app.GlobFlags{
			Cwd:    "src",
			Ignore: []string{},
			Dot:    &yes,
			NoDir:  &no,
		})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(f.dir, "src"), opts.Cwd)
		assert.NotNil(t, opts.Ignore)
		assert.Empty(t, opts.Ignore)
		assert.True(t, opts.Dot)
		assert.False(t, opts.NoDir)
	})

	t.Run("unset flags keep config values", func(t *testing.T) {
		f := newFixture(t)
		f.withConfig(&domain.GlobOptions{Cwd: "/from/config", Ignore: []string{"dist/**"}, NoCase: true})

		opts, err := f.app.LoadOptions(app.GlobFlags{})
		require.NoError(t, err)
		assert.Equal(t, &domain.GlobOptions{Cwd: "/from/config", Ignore: []string{"dist/**"}, NoCase: true}, opts)
	})

	t.Run("explicit config path skips discovery", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load("custom.yaml").Return(&domain.GlobOptions{Cwd: "/x", Ignore: []string{}}, nil)

		opts, err := f.app.LoadOptions(app.GlobFlags{ConfigPath: "custom.yaml"})
		require.NoError(t, err)
		assert.Equal(t, "/x", opts.Cwd)
	})

	t.Run("load error", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load("bad.yaml").Return(nil, domain.ErrConfigParseFailed)

		_, err := f.app.LoadOptions(app.GlobFlags{ConfigPath: "bad.yaml"})
		require.ErrorIs(t, err, domain.ErrConfigParseFailed)
	})
}

func TestApp_SetJSONLogs_IgnoresPlainLoggers(t *testing.T) {
	f := newFixture(t)
	require.NotPanics(t, func() {
		f.app.SetJSONLogs(true)
	})
}
