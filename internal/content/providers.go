package content

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Project is one entry in the Projects window.
type Project struct {
	Name        string `toml:"name" yaml:"name"`
	Description string `toml:"description" yaml:"description"`
	URL         string `toml:"url" yaml:"url"`
}

// Post is one entry in the Blog window.
type Post struct {
	Title string `toml:"title" yaml:"title"`
	Date  string `toml:"date" yaml:"date"`
	Body  string `toml:"body" yaml:"body"`
}

// Library is the static text the providers draw from.
type Library struct {
	Owner    string    `toml:"owner"`
	Email    string    `toml:"email"`
	Homepage string    `toml:"homepage"`
	About    []string  `toml:"about"`
	Resume   []string  `toml:"resume"`
	Projects []Project `toml:"projects"`
	Posts    []Post    `toml:"posts"`
}

// DefaultLibrary is placeholder content shipped with the binary.
func DefaultLibrary() Library {
	return Library{
		Owner:    "Desk Owner",
		Email:    "owner@example.com",
		Homepage: "https://example.com",
		About: []string{
			"Hi, welcome to my desktop.",
			"Double-click an icon or use the start menu to look around.",
		},
		Resume: []string{
			"Experience",
			"  Software Engineer, Example Corp (2020-present)",
			"",
			"Education",
			"  B.Sc. Computer Science",
		},
		Projects: []Project{
			{Name: "glassdesk", Description: "A desktop in your terminal.", URL: "https://example.com/glassdesk"},
		},
		Posts: []Post{
			{Title: "Hello, world", Date: "2024-01-01", Body: "First post on the new desk."},
		},
	}
}

// Mounter returns a Mounter that builds providers over lib.
func (lib Library) Mounter() Mounter {
	return MounterFunc(func(t Type, cb Callbacks) Provider {
		return New(t, cb, lib)
	})
}

// New builds the provider for t. Unknown types get a blank page.
func New(t Type, cb Callbacks, lib Library) Provider {
	switch t {
	case Mail:
		return &MailForm{To: lib.Email, cb: cb, lastRow: -1}
	case Blog:
		return &BlogReader{Posts: lib.Posts, selected: -1}
	case Projects:
		lines := make([]string, 0, len(lib.Projects)*3)
		for _, p := range lib.Projects {
			lines = append(lines, "* "+p.Name, "  "+p.Description)
			if p.URL != "" {
				lines = append(lines, "  "+p.URL)
			}
			lines = append(lines, "")
		}
		return Page(lines)
	case About:
		return Page(append([]string{lib.Owner, ""}, lib.About...))
	case Resume:
		return Page(append([]string{lib.Owner + " - Resume", ""}, lib.Resume...))
	case Chrome:
		return Page(append([]string{"Address: " + lib.Homepage, strings.Repeat("-", 40)}, lib.About...))
	default:
		return Page(nil)
	}
}

// Page is read-only wrapped text. Presses fall through to dragging.
type Page []string

func (p Page) Render(cols, rows int) string {
	return layout(p, cols, rows)
}

func (Page) Press(int, int) bool { return false }

// MailForm is a contact form with a Send button on its last row.
type MailForm struct {
	To      string
	Draft   string
	Status  string
	cb      Callbacks
	lastRow int
}

const sendLabel = "[ Send ]"

func (f *MailForm) Render(cols, rows int) string {
	lines := []string{"To: " + f.To, "Message:"}
	body := f.Draft
	if body == "" {
		body = "(type your message)"
	}
	lines = append(lines, wrap(body, cols)...)

	footer := sendLabel
	if f.Status != "" {
		footer += "  " + f.Status
	}

	if rows < 1 {
		rows = 1
	}
	if len(lines) > rows-1 {
		lines = lines[:rows-1]
	}
	for len(lines) < rows-1 {
		lines = append(lines, "")
	}
	f.lastRow = rows - 1
	lines = append(lines, footer)
	return clip(lines, cols, rows)
}

func (f *MailForm) Press(col, row int) bool {
	if row != f.lastRow || col < 0 || col >= len(sendLabel) {
		return false
	}
	if strings.TrimSpace(f.Draft) == "" {
		f.Status = "write something first"
		return true
	}
	f.Draft = ""
	f.Status = ""
	f.cb.sent()
	return true
}

func (f *MailForm) Insert(text string) {
	f.Draft += text
	f.Status = ""
}

func (f *MailForm) Backspace() {
	if r := []rune(f.Draft); len(r) > 0 {
		f.Draft = string(r[:len(r)-1])
	}
}

// BlogReader lists posts and opens one on press.
type BlogReader struct {
	Posts    []Post
	selected int
}

const (
	blogListOffset = 2
	backLabel      = "< Back"
)

// Selected is the index of the open post, or -1 in the list view.
func (b *BlogReader) Selected() int { return b.selected }

func (b *BlogReader) Render(cols, rows int) string {
	if b.selected >= 0 && b.selected < len(b.Posts) {
		p := b.Posts[b.selected]
		lines := []string{backLabel, "", p.Title, p.Date, ""}
		lines = append(lines, wrap(p.Body, cols)...)
		return layout(lines, cols, rows)
	}
	lines := []string{fmt.Sprintf("Posts (%d)", len(b.Posts)), ""}
	for _, p := range b.Posts {
		lines = append(lines, ansi.Truncate(fmt.Sprintf("> %s  %s", p.Title, p.Date), cols, "…"))
	}
	return clip(lines, cols, rows)
}

func (b *BlogReader) Press(col, row int) bool {
	if b.selected >= 0 {
		if row == 0 && col >= 0 && col < len(backLabel) {
			b.selected = -1
			return true
		}
		return false
	}
	i := row - blogListOffset
	if i < 0 || i >= len(b.Posts) {
		return false
	}
	b.selected = i
	return true
}

// layout wraps every line to cols and clips to rows.
func layout(lines []string, cols, rows int) string {
	var out []string
	for _, l := range lines {
		out = append(out, wrap(l, cols)...)
	}
	return clip(out, cols, rows)
}

func wrap(s string, cols int) []string {
	if cols <= 0 {
		return nil
	}
	if s == "" {
		return []string{""}
	}
	return strings.Split(ansi.Wordwrap(s, cols, " -"), "\n")
}

func clip(lines []string, cols, rows int) string {
	if rows <= 0 || cols <= 0 {
		return ""
	}
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, cols, "")
	}
	return strings.Join(lines, "\n")
}
