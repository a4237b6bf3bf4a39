package router

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/BrandonKowalski/stacknav/router"

// Span outcomes.
const (
	outcomeEntered   = "entered"
	outcomeRejected  = "rejected"
	outcomeCancelled = "cancelled"
	outcomeFailed    = "failed"
	outcomeExited    = "exited"
	outcomeVetoed    = "vetoed"
	outcomeHalted    = "halted"
)

func defaultTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

func screenAttributes(s *Screen) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("screen.name", s.name),
		attribute.Int64("screen.id", int64(s.id)),
	}
}

func (s *Stack) startSpan(op string, sc *Screen) trace.Span {
	_, span := s.tracer.Start(s.ctx, "router."+op, trace.WithAttributes(screenAttributes(sc)...))
	return span
}

func endSpan(span trace.Span, outcome string) {
	span.SetAttributes(attribute.String("outcome", outcome))
	span.End()
}
