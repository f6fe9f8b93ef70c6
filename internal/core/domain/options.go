package domain

import "slices"

// GlobOptions configures the pattern-matching engine.
// Cwd and Ignore are required, the remaining fields are passed through to the engine.
type GlobOptions struct {
	// Cwd is the base directory patterns are evaluated in and matches are resolved against.
	Cwd string
	// Ignore lists patterns excluded from matching. A nil slice means "not configured",
	// an empty slice means "ignore nothing".
	Ignore []string
	// Dot lets wildcards match entries whose name starts with a dot.
	Dot bool
	// NoDir restricts matches to files.
	NoDir bool
	// NoFollow stops the engine from following symlinked directories.
	NoFollow bool
	// NoCase matches case-insensitively.
	NoCase bool
}

// Clone returns a deep copy of the options.
func (o *GlobOptions) Clone() GlobOptions {
	c := *o
	if o.Ignore != nil {
		c.Ignore = slices.Clone(o.Ignore)
	}
	return c
}
