package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/genevent-go/genevent"
)

const (
	statusDescriptionFailed   = "Operation failed"
	statusDescriptionCanceled = "Operation cancelled"
	statusDescriptionTimeout  = "Operation timed out"
	attrUnknownStatus         = "status"
)

// TracingCollector implements genevent.TracingCollector with an OpenTelemetry tracer.
type TracingCollector struct {
	tracer trace.Tracer
}

// NewTracingCollector creates a tracing collector; the tracer should come from your TracerProvider.
func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

// StartSpan starts a span carrying attrs and returns the context holding it.
func (t *TracingCollector) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, genevent.SpanContext) {

	spanCtx, span := t.tracer.Start(ctx, name, trace.WithAttributes(toAttributes(attrs)...))

	return spanCtx, &OTelSpanContext{span: span}
}

// FinishSpan adds the final attributes, maps status onto the span status and ends the span.
// Span contexts not created by this collector are ignored.
func (t *TracingCollector) FinishSpan(spanCtx genevent.SpanContext, status string, attrs map[string]string) {
	otelSpanCtx, ok := spanCtx.(*OTelSpanContext)
	if !ok {
		return
	}

	otelSpanCtx.span.SetAttributes(toAttributes(attrs)...)
	otelSpanCtx.SetStatus(status)
	otelSpanCtx.span.End()
}

var _ genevent.TracingCollector = (*TracingCollector)(nil)

// OTelSpanContext implements genevent.SpanContext by wrapping an OpenTelemetry span.
type OTelSpanContext struct {
	span trace.Span
}

// SetStatus maps generic status strings onto OpenTelemetry status codes.
// Unknown statuses are kept as a span attribute.
func (s *OTelSpanContext) SetStatus(status string) {
	switch status {
	case "ok", "success", "completed":
		s.span.SetStatus(codes.Ok, "")
	case "error", "failed", "failure":
		s.span.SetStatus(codes.Error, statusDescriptionFailed)
	case "cancelled", "canceled":
		s.span.SetStatus(codes.Error, statusDescriptionCanceled)
	case "timeout":
		s.span.SetStatus(codes.Error, statusDescriptionTimeout)
	default:
		s.span.SetAttributes(attribute.String(attrUnknownStatus, status))
	}
}

func (s *OTelSpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

var _ genevent.SpanContext = (*OTelSpanContext)(nil)
