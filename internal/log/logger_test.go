package log

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/lasatanica/backoffice/internal/errors"
)

func jsonLogger(buf *bytes.Buffer, level Level) *Logger {
	return New(Config{Level: level, Format: FormatJSON, Output: NewOutput(buf)})
}

// records decodes one JSON object per line
func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec), line)
		out = append(out, rec)
	}
	return out
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := jsonLogger(&buf, LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown", "route", "/users")
	logger.Error("shown too")

	recs := records(t, &buf)
	require.Len(t, recs, 2)
	assert.Equal(t, "WARN", recs[0]["level"])
	assert.Equal(t, "/users", recs[0]["route"])
	assert.Equal(t, "ERROR", recs[1]["level"])

	assert.False(t, logger.Enabled(context.Background(), LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), LevelError))
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatText, Output: NewOutput(&buf)})

	logger.Info("console starting", "server_route", "https://api.example.com")

	assert.Contains(t, buf.String(), `msg="console starting"`)
	assert.Contains(t, buf.String(), "server_route=https://api.example.com")
}

func TestServiceAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Format:         FormatJSON,
		Output:         NewOutput(&buf),
		ServiceName:    "backoffice",
		ServiceVersion: "1.4.0",
	})

	logger.Info("ready")

	rec := records(t, &buf)[0]
	assert.Equal(t, "backoffice", rec["service"])
	assert.Equal(t, "1.4.0", rec["version"])
	assert.Equal(t, "1.4.0", logger.Config().ServiceVersion)
}

func TestWithAndWithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := jsonLogger(&buf, LevelDebug).With("component", "router").WithGroup("nav")

	logger.Debug("guard", "route", "/home")

	rec := records(t, &buf)[0]
	assert.Equal(t, "router", rec["component"])
	assert.Equal(t, map[string]any{"route": "/home"}, rec["nav"])
}

func TestWithErrorTaxonomyFields(t *testing.T) {
	var buf bytes.Buffer
	logger := jsonLogger(&buf, LevelDebug)

	logger.WithError(errors.NewServerError(503, "mantenimiento")).Error("api request failed")

	rec := records(t, &buf)[0]
	assert.Equal(t, "SRV-001", rec["error_code"])
	assert.Equal(t, "ServerError", rec["error_kind"])
	assert.Equal(t, float64(503), rec["status_code"])
	assert.Equal(t, "mantenimiento", rec["detail"])
}

func TestWithErrorPlainAndNil(t *testing.T) {
	var buf bytes.Buffer
	logger := jsonLogger(&buf, LevelDebug)

	assert.Same(t, logger, logger.WithError(nil))

	logger.WithError(stderrors.New("disk full")).Warn("metrics not written")
	rec := records(t, &buf)[0]
	assert.Equal(t, "disk full", rec["error"])
	assert.NotContains(t, rec, "error_code")
}

func TestWithErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	logger := jsonLogger(&buf, LevelDebug)

	logger.WithError(errors.NewTransportError(stderrors.New("connection refused"))).Info("retry")

	rec := records(t, &buf)[0]
	assert.Equal(t, "NET-002", rec["error_code"])
	assert.Equal(t, "connection refused", rec["cause"])
}

func TestLogErrorContext(t *testing.T) {
	var buf bytes.Buffer
	logger := jsonLogger(&buf, LevelDebug)

	logger.LogErrorContext(context.Background(), "navigation failed", nil)
	assert.Empty(t, buf.String())

	logger.LogErrorContext(context.Background(), "navigation failed", errors.NewNotFoundError("no existe"))
	rec := records(t, &buf)[0]
	assert.Equal(t, "navigation failed", rec["msg"])
	assert.Equal(t, "NF-001", rec["error_code"])
}

func TestTraceCorrelation(t *testing.T) {
	var buf bytes.Buffer
	logger := jsonLogger(&buf, LevelDebug)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "api request")
	logger.Info("no span")

	recs := records(t, &buf)
	require.Len(t, recs, 2)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", recs[0]["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", recs[0]["span_id"])
	assert.NotContains(t, recs[1], "trace_id")
}

func TestTraceCorrelationSurvivesWith(t *testing.T) {
	var buf bytes.Buffer
	logger := jsonLogger(&buf, LevelDebug).With("component", "api_client")

	traceID, _ := trace.TraceIDFromHex("0af7651916cd43dd8448eb211c80319c")
	spanID, _ := trace.SpanIDFromHex("b7ad6b7169203331")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	logger.DebugContext(ctx, "api response")

	rec := records(t, &buf)[0]
	assert.Equal(t, "api_client", rec["component"])
	assert.Equal(t, "0af7651916cd43dd8448eb211c80319c", rec["trace_id"])
}
