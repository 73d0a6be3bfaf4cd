package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestZapLoggerWritesStructuredObject(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")

	log.InfoObj("catalog fetched", "catalog_meta", map[string]any{"items": 3})
	if err := log.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["msg"] != "catalog fetched" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key in %v", entry)
	}
	meta, ok := entry["catalog_meta"].(map[string]any)
	if !ok || meta["items"] != float64(3) {
		t.Fatalf("unexpected catalog_meta: %v", entry["catalog_meta"])
	}
}

func TestZapLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.InfoObj("dropped", "k", "v")
	log.DebugObj("dropped", "k", "v")
	if buf.Len() != 0 {
		t.Fatalf("expected info/debug to be filtered, got %q", buf.String())
	}

	log.WarnObj("kept", "k", "v")
	if buf.Len() == 0 {
		t.Fatalf("expected warn entry to be written")
	}
}

func TestEnsureFallsBackToNop(t *testing.T) {
	if _, ok := Ensure(nil).(NopLogger); !ok {
		t.Fatalf("expected NopLogger for nil input")
	}
	log := New(&bytes.Buffer{}, "info")
	if Ensure(log) != Logger(log) {
		t.Fatalf("expected Ensure to keep a non-nil logger")
	}
}
