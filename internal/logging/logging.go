// Package logging builds the process logger. The terminal belongs to the
// desktop, so logs go to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// FileName is the log file under the state directory.
const FileName = "glassdesk.log"

// Path returns the log file location, creating its directory.
func Path() (string, error) {
	return xdg.StateFile(filepath.Join("glassdesk", FileName))
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// New returns a debug logger writing to w. Timestamps are included since
// sessions run for a long time.
func New(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// Open returns a file logger when debug is set and a discarding one
// otherwise. The returned close func is never nil.
func Open(debug bool) (*log.Logger, func() error, error) {
	nop := func() error { return nil }
	if !debug {
		return Discard(), nop, nil
	}
	path, err := Path()
	if err != nil {
		return Discard(), nop, fmt.Errorf("resolve log path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return Discard(), nop, fmt.Errorf("open log file: %w", err)
	}
	l := New(f, "glassdesk")
	l.Debug("log opened", "path", path)
	return l, f.Close, nil
}
