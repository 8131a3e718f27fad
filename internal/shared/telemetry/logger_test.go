package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestWriteKeepsReservedKeys(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Warn("plan.llm_fallback", map[string]any{"msg": "spoofed", "err": errors.New("timeout"), "plan_id": "p1"})

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["msg"] != "plan.llm_fallback" || payload["level"] != "warn" {
		t.Fatalf("reserved keys overwritten: %v", payload)
	}
	if payload["err"] != "timeout" {
		t.Fatalf("expected error rendered as string, got %v", payload["err"])
	}
}

func TestFieldsMerge(t *testing.T) {
	got := Fields(map[string]any{"a": 1, "b": 1}, nil, map[string]any{"b": 2})
	if got["a"] != 1 || got["b"] != 2 || len(got) != 2 {
		t.Fatalf("unexpected merge: %v", got)
	}
}
