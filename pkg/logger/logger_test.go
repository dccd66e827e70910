package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestLogger_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "dashboard", LevelDebug)

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithAction(ctx, "recompute")
	ctx = WithQuery(ctx, "summary")
	l.Info(ctx, "query finished", "rows", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}

	want := map[string]any{
		"message":    "query finished",
		"service":    "dashboard",
		"request_id": "req-1",
		"action":     "recompute",
		"query":      "summary",
	}
	for k, v := range want {
		if rec[k] != v {
			t.Errorf("field %s = %v, want %v", k, rec[k], v)
		}
	}
	if rec["rows"] != float64(3) {
		t.Errorf("rows = %v, want 3", rec["rows"])
	}
}

func TestLogger_ErrorGroup(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "dashboard", LevelInfo)

	l.Error(context.Background(), "load failed", errors.New("boom"))

	var rec struct {
		Level string `json:"level"`
		Error struct {
			Msg string `json:"msg"`
		} `json:"error"`
	}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec.Level != "ERROR" || rec.Error.Msg != "boom" {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "dashboard", LevelWarn)

	l.Info(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at WARN, got %s", buf.String())
	}
}

func TestWithLogCtx_Merges(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	ctx = WithAction(ctx, "export")

	lc := FromContext(ctx)
	if lc.RequestID != "abc" || lc.Action != "export" {
		t.Fatalf("merge lost fields: %+v", lc)
	}
}

func TestValidateLogLevel(t *testing.T) {
	if !ValidateLogLevel(LevelDebug) || ValidateLogLevel("TRACE") {
		t.Fatal("unexpected level validation result")
	}
}
