package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Reload is delivered by Watch after the config file changes. Err is set when
// the new file could not be used; the previous settings stay in effect.
type Reload struct {
	Config     *UserConfig
	Validation *ValidationResult
	Err        error
}

// Watch reloads path whenever it is written or replaced and calls onChange
// with the result. The parent directory is watched so editors that save by
// rename are seen. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, onChange func(Reload)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg, v, err := LoadFile(path)
			onChange(Reload{Config: cfg, Validation: v, Err: err})
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			onChange(Reload{Err: fmt.Errorf("watch: %w", err)})
		}
	}
}
