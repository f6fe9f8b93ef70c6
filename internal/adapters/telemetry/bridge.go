package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/globfind/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor and reports finished spans to a Logger.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{
		logger: logger,
	}
}

// OnStart does nothing.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, its identifier attribute, outcome and duration.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	line := s.Name()
	if id, ok := stringAttr(s.Attributes(), AttrIdentifier); ok {
		line += " " + id
	}

	outcome := "ok"
	if s.Status().Code == codes.Error {
		outcome = "error"
	}
	if v, ok := stringAttr(s.Attributes(), AttrOutcome); ok {
		outcome = v
	}

	b.logger.Info(fmt.Sprintf("%s %s (%s)", line, outcome, s.EndTime().Sub(s.StartTime()).Round(time.Microsecond)))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

func stringAttr(attrs []attribute.KeyValue, key string) (string, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value.Emit(), true
		}
	}
	return "", false
}
