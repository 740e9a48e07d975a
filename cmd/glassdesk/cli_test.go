package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/dodorz/glassdesk/internal/script"
)

// isolateXDG points the config and data dirs at a temp dir.
func isolateXDG(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunReplayJSON(t *testing.T) {
	isolateXDG(t)
	path := writeScript(t, "steps:\n  - open: mail\n  - open: blog\n  - minimize: mail\n")

	var out bytes.Buffer
	if err := runReplay(context.Background(), &out, path, true); err != nil {
		t.Fatalf("runReplay failed: %v", err)
	}

	var res script.Result
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("expected JSON output, got %v: %s", err, out.String())
	}
	if len(res.Steps) != 3 {
		t.Errorf("expected 3 steps, got %d", len(res.Steps))
	}
	if len(res.Snapshot.Windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(res.Snapshot.Windows))
	}
	if !res.Snapshot.Windows[0].Minimized {
		t.Error("expected mail minimized")
	}
}

func TestRunReplayTable(t *testing.T) {
	isolateXDG(t)
	path := writeScript(t, "steps:\n  - open: {type: about, title: Hello}\n  - shutdown: true\n")

	var out bytes.Buffer
	if err := runReplay(context.Background(), &out, path, false); err != nil {
		t.Fatalf("runReplay failed: %v", err)
	}
	for _, want := range []string{"Hello", "open", "shutdown", "Desktop shut down."} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestRunReplayErrors(t *testing.T) {
	isolateXDG(t)
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.yaml")},
		{"bad step", writeScript(t, "steps:\n  - explode: now\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := runReplay(context.Background(), &out, tt.path, false); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestResetConfigAborts(t *testing.T) {
	isolateXDG(t)

	var out bytes.Buffer
	if err := resetConfigToDefaults(strings.NewReader("n\n"), &out, false); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if !strings.Contains(out.String(), "Aborted.") {
		t.Errorf("expected abort, got %q", out.String())
	}
}

func TestResetConfigWithYes(t *testing.T) {
	isolateXDG(t)

	var out bytes.Buffer
	if err := resetConfigToDefaults(strings.NewReader(""), &out, true); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	path := strings.TrimSpace(strings.TrimPrefix(out.String(), "Configuration reset:"))
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config written at %s: %v", path, err)
	}
}

func TestPrintCatalog(t *testing.T) {
	isolateXDG(t)

	var out bytes.Buffer
	if err := printCatalog(&out); err != nil {
		t.Fatalf("printCatalog failed: %v", err)
	}
	for _, want := range []string{"Desktop icons", "Start menu", "mail", "shutdown"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected catalog to contain %q", want)
		}
	}
}

func TestListKeybindings(t *testing.T) {
	isolateXDG(t)

	var out bytes.Buffer
	if err := listKeybindings(&out); err != nil {
		t.Fatalf("listKeybindings failed: %v", err)
	}
	if !strings.Contains(out.String(), "ctrl+c") {
		t.Errorf("expected ctrl+c in keybindings, got:\n%s", out.String())
	}
}

func TestFindEditorPrefersEnv(t *testing.T) {
	t.Setenv("EDITOR", "myeditor --wait")
	t.Setenv("VISUAL", "other")

	got, err := findEditor()
	if err != nil {
		t.Fatal(err)
	}
	if got != "myeditor --wait" {
		t.Errorf("expected $EDITOR, got %s", got)
	}
}
