package otel

import (
	"fmt"
	"net/http"
	"svim/shared/failure"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const eventRejected = "request.rejected"

type Scope interface {
	End()
	TraceError(err error)
	TraceIfError(err error)
	AddEvent(name string)
	SetAttribute(key string, value any)
	SetAttributes(attributes map[string]any)
}

type scopeImpl struct {
	span oteltrace.Span
}

func (s *scopeImpl) End() {
	s.span.End()
}

// TraceError marks the span failed. Caller mistakes (4xx failures) are recorded as an event
// and leave the span status untouched.
func (s *scopeImpl) TraceError(err error) {
	if code := failure.GetCode(err); code < http.StatusInternalServerError {
		s.span.AddEvent(eventRejected, oteltrace.WithAttributes(
			attribute.Int("http.status_code", code),
			attribute.String("reason", err.Error()),
		))

		return
	}

	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *scopeImpl) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scopeImpl) AddEvent(name string) {
	s.span.AddEvent(name)
}

// SetAttribute converts the value to the closest attribute type. Nil pointers are skipped.
func (s *scopeImpl) SetAttribute(key string, value any) {
	switch val := value.(type) {
	case nil:
		return
	case bool:
		s.span.SetAttributes(attribute.Bool(key, val))
	case string:
		s.span.SetAttributes(attribute.String(key, val))
	case int:
		s.span.SetAttributes(attribute.Int(key, val))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, val))
	case *int64:
		if val != nil {
			s.span.SetAttributes(attribute.Int64(key, *val))
		}
	case float64:
		s.span.SetAttributes(attribute.Float64(key, val))
	case []int64:
		s.span.SetAttributes(attribute.Int64Slice(key, val))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, val))
	case time.Time:
		s.span.SetAttributes(attribute.String(key, val.Format(time.RFC3339)))
	case *time.Time:
		if val != nil {
			s.span.SetAttributes(attribute.String(key, val.Format(time.RFC3339)))
		}
	case time.Duration:
		s.span.SetAttributes(attribute.Int64(key, val.Milliseconds()))
	case fmt.Stringer:
		s.span.SetAttributes(attribute.String(key, val.String()))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", val)))
	}
}

func (s *scopeImpl) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}

func NewScope(span oteltrace.Span) Scope {
	return &scopeImpl{
		span: span,
	}
}
