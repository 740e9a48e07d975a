package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "test")
	l.Debug("window opened", "id", "mail-1")

	out := buf.String()
	if !strings.Contains(out, "window opened") || !strings.Contains(out, "id=mail-1") {
		t.Errorf("expected message and key/value in output, got %q", out)
	}
}

func TestOpenWithoutDebugDiscards(t *testing.T) {
	l, closeFn, err := Open(false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if l == nil || closeFn == nil {
		t.Fatal("expected a logger and a close func")
	}
	if err := closeFn(); err != nil {
		t.Errorf("expected nop close, got %v", err)
	}
}
