// Package app implements the application layer for globfind.
package app

import (
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/globfind/internal/core/domain"
	"go.trai.ch/globfind/internal/core/ports"
	"go.trai.ch/globfind/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	matcher      ports.Matcher
	logger       ports.Logger
	tracer       ports.Tracer
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, matcher ports.Matcher, log ports.Logger, tracer ports.Tracer) *App {
	return &App{
		configLoader: loader,
		matcher:      matcher,
		logger:       log,
		tracer:       tracer,
	}
}

// Components contains all the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger) *Components {
	return &Components{
		App:    app,
		Logger: logger,
	}
}

// SetJSONLogs switches the logger to JSON output when it supports it.
func (a *App) SetJSONLogs(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// GlobFlags carries command line overrides for the glob options.
// Nil pointers and a nil Ignore slice leave the config file value in place.
type GlobFlags struct {
	// ConfigPath is an explicit config file. When empty, globfind.yaml is
	// discovered by walking up from the working directory.
	ConfigPath string
	Cwd        string
	Ignore     []string
	Dot        *bool
	NoDir      *bool
	NoFollow   *bool
	NoCase     *bool
}

// LoadOptions merges the config file with the flag overrides.
// A relative --cwd is taken relative to the working directory.
func (a *App) LoadOptions(flags GlobFlags) (*domain.GlobOptions, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(domain.ErrFailedToGetCwd, err)
	}

	configPath := flags.ConfigPath
	if configPath == "" {
		configPath, err = a.configLoader.DiscoverConfigPath(workDir)
		if err != nil {
			return nil, err
		}
	}

	opts := &domain.GlobOptions{Cwd: workDir}
	if configPath != "" {
		loaded, loadErr := a.configLoader.Load(configPath)
		if loadErr != nil {
			return nil, zerr.Wrap(loadErr, "failed to load configuration")
		}
		opts = loaded
	}

	applyFlags(opts, workDir, flags)
	return opts, nil
}

func applyFlags(opts *domain.GlobOptions, workDir string, flags GlobFlags) {
	if flags.Cwd != "" {
		opts.Cwd = flags.Cwd
		if !filepath.IsAbs(opts.Cwd) {
			opts.Cwd = filepath.Join(workDir, opts.Cwd)
		}
	}
	if flags.Ignore != nil {
		opts.Ignore = flags.Ignore
	}
	setBool(&opts.Dot, flags.Dot)
	setBool(&opts.NoDir, flags.NoDir)
	setBool(&opts.NoFollow, flags.NoFollow)
	setBool(&opts.NoCase, flags.NoCase)
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// newResolver loads the options and constructs the resolver.
func (a *App) newResolver(flags GlobFlags) (*resolver.Resolver, error) {
	opts, err := a.LoadOptions(flags)
	if err != nil {
		return nil, err
	}
	return resolver.New(opts, a.matcher)
}
