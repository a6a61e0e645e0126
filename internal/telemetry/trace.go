package telemetry

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// StartRequestSpan creates a client span for one API call.
//
// Usage:
//
//	ctx, span := telemetry.StartRequestSpan(ctx, http.MethodGet, "/user/me")
//	defer span.End()
func StartRequestSpan(ctx context.Context, method, path string) (context.Context, trace.Span) {
	tracer := GetTracerProvider().Tracer("api_client")
	return tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", path),
			attribute.String("component", "api_client"),
		),
	)
}

// EndRequestSpan records the response status and error, then ends span
func EndRequestSpan(span trace.Span, status int, err error) {
	if status != 0 {
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
	if err != nil {
		RecordError(span, err)
	} else {
		RecordSuccess(span)
	}
	span.End()
}

// Inject writes the trace context of ctx into outgoing request headers
func Inject(ctx context.Context, header http.Header) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(header))
}

// StartNavigationSpan creates the span that parents every API call made
// while a route is guarded and mounted
func StartNavigationSpan(ctx context.Context, route string) (context.Context, trace.Span) {
	tracer := GetTracerProvider().Tracer("router")
	return tracer.Start(ctx, "navigate "+route,
		trace.WithAttributes(
			attribute.String("route", route),
			attribute.String("component", "router"),
		),
	)
}

// EndNavigationSpan records the navigation outcome and ends span
func EndNavigationSpan(span trace.Span, outcome string) {
	span.SetAttributes(attribute.String("outcome", outcome))
	span.End()
}

// RecordSuccess marks a span as successful
func RecordSuccess(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
	span.SetStatus(codes.Ok, "")
}

// RecordError records err on span and sets the error status
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
