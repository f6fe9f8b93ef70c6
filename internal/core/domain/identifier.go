// Package domain contains the core domain types for resolving @find module identifiers.
package domain

import "strings"

const (
	// Prefix marks a module identifier as claimed by the glob resolver.
	Prefix = "@find/"

	// PluginName is the stable name the resolver registers with the host bundler.
	PluginName = "globfind"
)

// HasPrefix reports whether the identifier is claimed by the glob resolver.
func HasPrefix(identifier string) bool {
	return strings.HasPrefix(identifier, Prefix)
}

// SplitIdentifier splits e.g. "foo.css?used" into "foo.css" and "?used".
// Only the last "?" is treated as the query delimiter, so a "?" wildcard earlier
// in a glob pattern stays part of the module id.
// moduleID+querySuffix always equals id.
func SplitIdentifier(id string) (moduleID, querySuffix string) {
	i := strings.LastIndexByte(id, '?')
	if i == -1 {
		return id, ""
	}
	return id[:i], id[i:]
}

// ConfigFileName is the name of the YAML file holding the glob options.
const ConfigFileName = "globfind.yaml"
