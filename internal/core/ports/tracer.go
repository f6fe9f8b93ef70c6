package ports

import "context"

// Tracer starts spans around units of work.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// Start creates a span named name as a child of any span in ctx.
	Start(ctx context.Context, name string) (context.Context, Span)
	// Shutdown flushes and stops the tracer.
	Shutdown(ctx context.Context) error
}

// Span is a single traced unit of work.
type Span interface {
	End()
	RecordError(err error)
	SetAttribute(key string, value any)
}
