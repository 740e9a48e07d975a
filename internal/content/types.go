// Package content defines the closed set of things a window can show and the
// providers that draw them.
//
// Providers only ever see a Callbacks value. They never touch the desktop that
// mounted them.
package content

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownContentType is returned by Parse for names outside the catalog.
var ErrUnknownContentType = errors.New("unknown content type")

// Type identifies what a window shows. At most one window per Type is open.
type Type string

const (
	Mail     Type = "mail"
	Blog     Type = "blog"
	Chrome   Type = "chrome"
	Projects Type = "projects"
	About    Type = "about"
	Resume   Type = "resume"
)

var all = []Type{Mail, Blog, Chrome, Projects, About, Resume}

// All returns every content type in catalog order.
func All() []Type {
	out := make([]Type, len(all))
	copy(out, all)
	return out
}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	for _, k := range all {
		if k == t {
			return true
		}
	}
	return false
}

// DefaultTitle is the capitalized type name.
func (t Type) DefaultTitle() string {
	s := string(t)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Parse resolves a case-insensitive type name.
func Parse(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownContentType, s)
	}
	return t, nil
}

// Callbacks is everything a provider may ask of its window.
type Callbacks struct {
	Close    func()
	Minimize func()
	Focus    func()
	// OnSent fires when a provider finishes its send action. Only Mail uses it.
	OnSent func()
}

func (c Callbacks) sent() {
	if c.OnSent != nil {
		c.OnSent()
	}
}

// Provider draws a window body on a character grid.
type Provider interface {
	// Render returns at most rows lines, each at most cols cells wide.
	Render(cols, rows int) string
	// Press handles a primary press at a body-relative cell. It returns true
	// when the press hit an interactive element, which suppresses dragging.
	Press(col, row int) bool
}

// TextInput is implemented by providers that accept typed text.
type TextInput interface {
	Insert(text string)
	Backspace()
}

// Mounter builds the provider for a newly opened window.
type Mounter interface {
	Mount(t Type, cb Callbacks) Provider
}

// MounterFunc adapts a function to Mounter.
type MounterFunc func(t Type, cb Callbacks) Provider

// Mount calls f.
func (f MounterFunc) Mount(t Type, cb Callbacks) Provider {
	return f(t, cb)
}
