package otel_test

import (
	"context"
	"errors"
	"svim/config"
	"svim/infras/otel"
	"svim/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScope(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "availability.Check")
	scope := otel.NewScope(span)

	scope.SetAttributes(map[string]any{
		"service.id":  int64(3),
		"eligible":    2,
		"outcome":     "resolved",
		"fallback":    true,
		"duration.ms": 12.5,
	})
	scope.TraceIfError(nil)
	scope.TraceIfError(errors.New("upstream down"))
	scope.End()

	ended := recorder.Ended()
	assert.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "upstream down", ended[0].Status().Description)
	assert.Len(t, ended[0].Attributes(), 5)
}

func TestScope_CallerErrorsLeaveStatusUnset(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "availability.Check")
	scope := otel.NewScope(span)

	scope.TraceError(failure.InvalidArgument(errors.New("search_days must not be negative")))
	scope.End()

	ended := recorder.Ended()
	assert.Len(t, ended, 1)
	assert.Equal(t, codes.Unset, ended[0].Status().Code)
	assert.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "request.rejected", ended[0].Events()[0].Name)
}

func TestScope_AttributeConversions(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "availability.Check")
	scope := otel.NewScope(span)

	var missing *int64
	start := time.Date(2026, time.January, 20, 14, 30, 0, 0, time.UTC)

	scope.SetAttributes(map[string]any{
		"staff.id":      missing,
		"desired_start": start,
		"elapsed":       1500 * time.Millisecond,
		"weekdays":      []string{"Sunday"},
	})
	scope.End()

	attrs := map[string]string{}
	for _, kv := range recorder.Ended()[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}

	assert.Equal(t, map[string]string{
		"desired_start": "2026-01-20T14:30:00Z",
		"elapsed":       "1500",
		"weekdays":      `["Sunday"]`,
	}, attrs)
}

func TestNewWithoutEndpointIsNoop(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "svim-test"

	o, cleanup := otel.New(cfg)
	ctx, scope := o.NewScope(context.Background(), "test", "noop")
	scope.End()

	assert.NotNil(t, ctx)
	assert.NotPanics(t, cleanup)
}

func TestNewWithEndpointCleanupStopsExporter(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "svim-test"
	cfg.External.Otel.Endpoint = "127.0.0.1:4317"

	o, cleanup := otel.New(cfg)
	assert.NotNil(t, o)

	done := make(chan struct{})

	go func() {
		defer close(done)
		cleanup()
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("cleanup did not return")
	}
}
