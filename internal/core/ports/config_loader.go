package ports

import "go.trai.ch/globfind/internal/core/domain"

// ConfigLoader defines the interface for loading glob options from a config file.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the glob options from the config file at path.
	// A relative cwd in the file is resolved against the file's directory.
	Load(path string) (*domain.GlobOptions, error)

	// DiscoverConfigPath walks up from cwd looking for a config file.
	// It returns an empty string when no config file exists.
	DiscoverConfigPath(cwd string) (string, error)
}
