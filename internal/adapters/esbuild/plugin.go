// Package esbuild adapts the @find resolver to esbuild's plugin API.
package esbuild

import (
	"regexp"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/globfind/internal/core/domain"
)

// Filter is the OnResolve filter selecting identifiers with the reserved prefix.
var Filter = "^" + regexp.QuoteMeta(domain.Prefix)

// Hook is the resolution hook the plugin delegates to.
type Hook interface {
	Name() string
	Resolve(identifier string) (domain.Resolution, error)
}

// Plugin returns an esbuild plugin that resolves @find identifiers through hook.
// The query suffix is handed back as esbuild's Suffix so loaders still see it.
func Plugin(hook Hook) api.Plugin {
	return api.Plugin{
		Name: hook.Name(),
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: Filter}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
				res, err := hook.Resolve(args.Path)
				if err != nil {
					return api.OnResolveResult{}, err
				}
				if !res.Handled {
					// Empty result: esbuild moves on to the next resolver.
					return api.OnResolveResult{}, nil
				}
				return api.OnResolveResult{
					Path:   res.File,
					Suffix: res.Query,
				}, nil
			})
		},
	}
}
