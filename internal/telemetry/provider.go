// Package telemetry traces API calls and navigations with OpenTelemetry and
// exports the spans over OTLP/HTTP when a collector is configured.
package telemetry

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	globalProvider trace.TracerProvider
	globalShutdown func(context.Context) error
	providerMu     sync.RWMutex
)

type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
)

// circuitBreaker stops export attempts after repeated failures so an
// unreachable collector does not stall the console
type circuitBreaker struct {
	failureThreshold int
	resetTimeout     time.Duration

	mu          sync.Mutex
	failures    int
	lastFailure time.Time
	state       breakerState
}

func newCircuitBreaker() *circuitBreaker {
	return &circuitBreaker{
		failureThreshold: 3,
		resetTimeout:     time.Minute,
	}
}

func (cb *circuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state == breakerClosed || time.Since(cb.lastFailure) > cb.resetTimeout
}

func (cb *circuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
	cb.state = breakerClosed
}

func (cb *circuitBreaker) recordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures++
	cb.lastFailure = time.Now()
	if cb.failures >= cb.failureThreshold {
		cb.state = breakerOpen
	}
}

// retryingExporter retries failed exports with exponential backoff
type retryingExporter struct {
	exporter sdktrace.SpanExporter
	breaker  *circuitBreaker

	attempts int
	initial  time.Duration
	max      time.Duration
}

func newRetryingExporter(exporter sdktrace.SpanExporter) *retryingExporter {
	return &retryingExporter{
		exporter: exporter,
		breaker:  newCircuitBreaker(),
		attempts: 4,
		initial:  100 * time.Millisecond,
		max:      2 * time.Second,
	}
}

func (e *retryingExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	if !e.breaker.allow() {
		return fmt.Errorf("span export suspended after repeated failures")
	}

	interval := e.initial
	var lastErr error
	for attempt := 0; attempt < e.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(interval):
			case <-ctx.Done():
				e.breaker.recordFailure()
				return ctx.Err()
			}
			interval = min(interval*2, e.max)
		}

		if lastErr = e.exporter.ExportSpans(ctx, spans); lastErr == nil {
			e.breaker.recordSuccess()
			return nil
		}
	}

	e.breaker.recordFailure()
	return fmt.Errorf("export spans after %d attempts: %w", e.attempts, lastErr)
}

func (e *retryingExporter) Shutdown(ctx context.Context) error {
	return e.exporter.Shutdown(ctx)
}

func createResource(cfg Config) (*resource.Resource, error) {
	return resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		),
		resource.WithHost(),
		resource.WithOS(),
		resource.WithTelemetrySDK(),
	)
}

func exporterOptions(cfg Config) []otlptracehttp.Option {
	opts := []otlptracehttp.Option{otlptracehttp.WithCompression(otlptracehttp.GzipCompression)}
	if strings.Contains(cfg.Endpoint, "://") {
		opts = append(opts, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	} else {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return opts
}

// InitProvider installs the global tracer provider. With tracing disabled a
// noop provider is installed. The returned function flushes and stops it.
func InitProvider(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if !cfg.Enabled() {
		SetProvider(noop.NewTracerProvider(), nil)
		return func(context.Context) error { return nil }, nil
	}

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	exporter, err := otlptracehttp.New(ctx, exporterOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("create OTLP exporter: %w", err)
	}

	sampler := sdktrace.AlwaysSample()
	if cfg.SampleRate < 1.0 {
		sampler = sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
		sdktrace.WithBatcher(newRetryingExporter(exporter), sdktrace.WithBatchTimeout(5*time.Second)),
	)
	SetProvider(tp, tp.Shutdown)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Shutdown, nil
}

// SetProvider installs tp as the provider used by the span helpers. A nil
// tp restores the noop default.
func SetProvider(tp trace.TracerProvider, shutdown func(context.Context) error) {
	providerMu.Lock()
	defer providerMu.Unlock()
	globalProvider = tp
	globalShutdown = shutdown
	if tp != nil {
		otel.SetTracerProvider(tp)
	}
}

// Shutdown flushes and stops the installed provider
func Shutdown(ctx context.Context) error {
	providerMu.RLock()
	shutdown := globalShutdown
	providerMu.RUnlock()

	if shutdown != nil {
		return shutdown(ctx)
	}
	return nil
}

// GetTracerProvider returns the installed provider, or a noop one
func GetTracerProvider() trace.TracerProvider {
	providerMu.RLock()
	defer providerMu.RUnlock()

	if globalProvider != nil {
		return globalProvider
	}
	return noop.NewTracerProvider()
}
