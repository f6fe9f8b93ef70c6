package telemetry

// Span and attribute names shared by the tracer's callers and the Bridge.
const (
	SpanResolve = "globfind.resolve"
	SpanBundle  = "globfind.bundle"

	AttrIdentifier = "globfind.identifier"
	AttrPattern    = "globfind.pattern"
	AttrOutcome    = "globfind.outcome"
	AttrFile       = "globfind.file"
	AttrMatches    = "globfind.matches"

	AttrEntryPoints = "globfind.entry_points"
	AttrOutputFiles = "globfind.output_files"
)
