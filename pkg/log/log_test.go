package log

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerAddsContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := newFromCore(core)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})

	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	ctx = WithUserID(ctx, "u-1")
	ctx = WithRequestID(ctx, "req-9")

	l.Infof(ctx, "hello %s", "world")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["trace_id"] != traceID.String() {
		t.Errorf("trace_id = %v", fields["trace_id"])
	}
	if fields["user_id"] != "u-1" {
		t.Errorf("user_id = %v", fields["user_id"])
	}
	if fields["request_id"] != "req-9" {
		t.Errorf("request_id = %v", fields["request_id"])
	}
	if entries[0].Message != "hello world" {
		t.Errorf("message = %q", entries[0].Message)
	}
}

func TestLoggerWithoutContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := newFromCore(core)

	l.Warn(context.Background(), "plain")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}
	if len(logs.All()[0].Context) != 0 {
		t.Errorf("expected no fields, got %v", logs.All()[0].Context)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"":      zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestIDFromContext(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
	ctx := WithRequestID(context.Background(), "abc")
	if got := RequestIDFromContext(ctx); got != "abc" {
		t.Errorf("got %q", got)
	}
}
