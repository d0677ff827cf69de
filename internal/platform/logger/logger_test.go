package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogger_TextFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, App: "pet-health-record", Writer: &buf})

	l.Info("ignored", nil)
	l.Error("fetch failed", map[string]any{"view": "alerts", "": "dropped"})

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "ignored") {
		t.Fatalf("info must be filtered at warn level: %q", out)
	}
	for _, want := range []string{"app=pet-health-record", "level=error", "msg=fetch failed", "view=alerts"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
	if strings.Contains(out, "=dropped") {
		t.Fatalf("empty keys must be dropped: %q", out)
	}
}

func TestLogger_JSONWith(t *testing.T) {
	var buf bytes.Buffer
	base := New(Options{Format: FormatJSON, Writer: &buf})
	child := base.With(map[string]any{"user_id": "u1"})

	child.Info("refresh", map[string]any{"generation": 2})
	base.Info("plain", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var first, second map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("json: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("json: %v", err)
	}
	if first["user_id"] != "u1" || first["generation"] != float64(2) || first["level"] != "info" {
		t.Fatalf("unexpected entry %v", first)
	}
	if _, ok := second["user_id"]; ok {
		t.Fatalf("With must not leak into parent: %v", second)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	cases := map[string]Level{"DEBUG": Debug, "warning": Warn, "error": Error, "": Info, "nope": Info}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%v want %v", in, got, want)
		}
	}
	if ParseFormat(" JSON ") != FormatJSON || ParseFormat("xml") != FormatText {
		t.Fatalf("unexpected format parsing")
	}
}

func TestNop(t *testing.T) {
	l := Nop().With(map[string]any{"a": 1})
	l.Error("nothing", nil)
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	fallback := New(Options{Writer: &buf})
	reqLog := fallback.With(map[string]any{"request_id": "r-1"})

	if FromContext(context.Background(), nil) == nil {
		t.Fatalf("expected Nop when nothing is set")
	}
	if FromContext(context.Background(), fallback) != fallback {
		t.Fatalf("expected fallback")
	}

	ctx := WithContext(context.Background(), reqLog)
	FromContext(ctx, fallback).Info("hi", nil)
	if !strings.Contains(buf.String(), "request_id=r-1") {
		t.Fatalf("expected request logger, got %q", buf.String())
	}
}
