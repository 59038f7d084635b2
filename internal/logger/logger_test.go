package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&EnvConfig{Level: "info", Format: "json", Output: &buf, ServiceName: "contentflow-test"})

	ctx := l.WithContext(context.Background())
	ctx = SetRequestID(ctx, "req-1")
	CtxInfo(ctx, "hello %s", "world")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if line["message"] != "hello world" {
		t.Errorf("unexpected message %v", line["message"])
	}
	if line["service"] != "contentflow-test" {
		t.Errorf("unexpected service %v", line["service"])
	}
	if line[FieldRequestID] != "req-1" {
		t.Errorf("expected request id field, got %v", line[FieldRequestID])
	}
	if GetRequestID(ctx) != "req-1" {
		t.Errorf("GetRequestID = %q", GetRequestID(ctx))
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&EnvConfig{Level: "warn", Format: "text", Output: &buf})
	ctx := l.WithContext(context.Background())

	CtxInfo(ctx, "dropped")
	if buf.Len() != 0 {
		t.Fatalf("info line should be filtered at warn level, got %q", buf.String())
	}
	CtxWarn(ctx, "kept")
	if !bytes.Contains(buf.Bytes(), []byte("kept")) {
		t.Fatalf("warn line missing: %q", buf.String())
	}
}

func TestEntry_AddsMetricFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&EnvConfig{Level: "info", Format: "json", Output: &buf})
	ctx := l.WithContext(context.Background())

	With(Fields{FieldStatus: "success"}).WithDuration(42).WithCount(3).Info(ctx, "generated")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if line[FieldDurationMs] != float64(42) || line[FieldCount] != float64(3) || line[FieldStatus] != "success" {
		t.Errorf("missing metric fields: %v", line)
	}
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	if FromContext(context.Background()) != GetDefault() {
		t.Error("expected default logger for bare context")
	}
}
