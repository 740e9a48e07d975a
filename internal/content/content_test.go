package content

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"mail", Mail, false},
		{" Blog ", Blog, false},
		{"CHROME", Chrome, false},
		{"notes", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownContentType) {
					t.Fatalf("expected ErrUnknownContentType, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultTitle(t *testing.T) {
	if got := Projects.DefaultTitle(); got != "Projects" {
		t.Errorf("expected 'Projects', got %q", got)
	}
	if got := Type("").DefaultTitle(); got != "" {
		t.Errorf("expected empty title, got %q", got)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0] = "tampered"
	if All()[0] != Mail {
		t.Error("All should return a fresh slice")
	}
}

func TestMailFormSend(t *testing.T) {
	sent := 0
	p := New(Mail, Callbacks{OnSent: func() { sent++ }}, DefaultLibrary())
	form, ok := p.(*MailForm)
	if !ok {
		t.Fatalf("expected *MailForm, got %T", p)
	}

	if form.Press(0, 0) {
		t.Error("press before first render should not hit the button")
	}

	out := form.Render(40, 6)
	if lines := strings.Split(out, "\n"); len(lines) != 6 || !strings.HasPrefix(lines[5], sendLabel) {
		t.Fatalf("expected send button on last row, got %q", out)
	}

	if !form.Press(2, 5) {
		t.Fatal("press on send button should be intercepted")
	}
	if sent != 0 {
		t.Error("empty draft must not be sent")
	}
	if form.Status == "" {
		t.Error("expected a status hint for an empty draft")
	}

	form.Insert("hello")
	form.Backspace()
	if form.Draft != "hell" {
		t.Errorf("expected draft 'hell', got %q", form.Draft)
	}

	form.Render(40, 6)
	if !form.Press(0, 5) {
		t.Fatal("press on send button should be intercepted")
	}
	if sent != 1 {
		t.Errorf("expected OnSent once, got %d", sent)
	}
	if form.Draft != "" {
		t.Error("draft should be cleared after sending")
	}

	if form.Press(20, 5) {
		t.Error("press right of the button should fall through")
	}
}

func TestBlogReaderNavigation(t *testing.T) {
	lib := DefaultLibrary()
	lib.Posts = []Post{{Title: "one"}, {Title: "two"}}
	b := New(Blog, Callbacks{}, lib).(*BlogReader)

	if b.Press(0, 0) {
		t.Error("header row is not interactive")
	}
	if !b.Press(0, 3) {
		t.Fatal("second post row should open the post")
	}
	if b.Selected() != 1 {
		t.Fatalf("expected post 1 selected, got %d", b.Selected())
	}
	if !strings.HasPrefix(b.Render(30, 10), backLabel) {
		t.Error("detail view should start with the back control")
	}
	if !b.Press(1, 0) {
		t.Fatal("back control should be intercepted")
	}
	if b.Selected() != -1 {
		t.Error("back should return to the list")
	}
}

func TestPageClips(t *testing.T) {
	p := Page{"a very long line that needs wrapping", "second"}
	out := p.Render(10, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q exceeds 10 columns", l)
		}
	}
	if p.Press(0, 0) {
		t.Error("pages never intercept presses")
	}
}
