// Package config provides the configuration loader for globfind.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/globfind/internal/core/domain"
	"go.trai.ch/globfind/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the globfind.yaml file at configPath and returns the glob options it describes.
func (l *Loader) Load(configPath string) (*domain.GlobOptions, error) {
	var globfile Globfile
	if err := readAndUnmarshalYAML(configPath, &globfile); err != nil {
		return nil, err
	}

	if globfile.Ignore == nil {
		l.Logger.Warn("'ignore' is not set in " + configPath + "; use 'ignore: []' to ignore nothing")
	}

	return &domain.GlobOptions{
		Cwd:      resolveRoot(configPath, globfile.Cwd),
		Ignore:   []string(globfile.Ignore),
		Dot:      globfile.Dot,
		NoDir:    globfile.NoDir,
		NoFollow: globfile.NoFollow,
		NoCase:   globfile.NoCase,
	}, nil
}

// DiscoverConfigPath walks up from cwd until it finds a globfind.yaml file.
func (l *Loader) DiscoverConfigPath(cwd string) (string, error) {
	currentDir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrFailedToGetCwd, err), "cwd", cwd)
	}

	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", nil
		}
		currentDir = parentDir
	}
}

// resolveRoot resolves the configured cwd relative to the config file's directory.
func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and decodes it into target, rejecting unknown keys.
// An empty file leaves target untouched.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is chosen by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", configPath)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(configFile))
	decoder.KnownFields(true)
	if parseErr := decoder.Decode(target); parseErr != nil && !errors.Is(parseErr, io.EOF) {
		return zerr.With(errors.Join(domain.ErrConfigParseFailed, parseErr), "path", configPath)
	}

	return nil
}
