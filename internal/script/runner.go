package script

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/dodorz/glassdesk/internal/desktop"
	"github.com/dodorz/glassdesk/internal/geometry"
	"github.com/dodorz/glassdesk/internal/pointer"
)

// DefaultViewport is used when a script does not set one.
var DefaultViewport = geometry.Viewport{Width: 1280, Height: 800}

// StepResult records what one step did.
type StepResult struct {
	Index   int    `json:"index"`
	Line    int    `json:"line"`
	Kind    string `json:"kind"`
	Target  string `json:"target,omitempty"`
	Changed bool   `json:"changed"`
}

// Result is the outcome of a replay.
type Result struct {
	Steps    []StepResult     `json:"steps"`
	Snapshot desktop.Snapshot `json:"snapshot"`
}

// Runner replays scripts. Options seed every desktop it creates; the
// viewport comes from the script.
type Runner struct {
	Options desktop.Options
	Logger  *log.Logger
}

// Run replays s on a fresh desktop and returns its final state. It stops
// early when ctx is cancelled.
func (r Runner) Run(ctx context.Context, s *Script) (Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	opts := r.Options
	opts.Viewport = DefaultViewport
	if s.Viewport != nil {
		opts.Viewport = s.Viewport.Viewport()
	}
	if opts.Logger == nil {
		opts.Logger = logger
	}
	wm := desktop.New(opts)
	touch := &pointer.TouchAdapter{}

	res := Result{Steps: make([]StepResult, 0, len(s.Steps))}
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		sr := StepResult{Index: i, Line: step.Line, Kind: step.Kind, Target: string(step.Type)}
		sr.Changed = apply(wm, touch, step)
		logger.Debug("step replayed", "index", i, "kind", step.Kind, "changed", sr.Changed)
		res.Steps = append(res.Steps, sr)
	}
	res.Snapshot = wm.Snapshot()
	return res, nil
}

func apply(wm *desktop.Manager, touch *pointer.TouchAdapter, s Step) bool {
	byType := func(op func(string) bool) bool {
		w, ok := wm.ByType(s.Type)
		return ok && op(w.ID)
	}

	switch s.Kind {
	case StepOpen:
		return wm.Open(s.Type, s.Title) != ""
	case StepClose:
		return byType(wm.Close)
	case StepMinimize:
		return byType(wm.Minimize)
	case StepFocus:
		return byType(wm.Focus)
	case StepPointer:
		return wm.HandlePointer(pointer.Event{
			Phase:     s.Phase,
			PointerID: s.Pointer.ID,
			At:        geometry.Point{X: s.Pointer.X, Y: s.Pointer.Y},
			Button:    s.Button,
			Source:    pointer.Mouse,
		})
	case StepTouch:
		ev, ok := touch.Translate(pointer.TouchPoint{
			ID:    s.Pointer.ID,
			At:    geometry.Point{X: s.Pointer.X, Y: s.Pointer.Y},
			Phase: s.Phase,
		})
		return ok && wm.HandlePointer(ev)
	case StepViewport:
		if wm.IsShutdown() {
			return false
		}
		wm.SetViewport(s.Size.Viewport())
		return true
	case StepStartMenu:
		return wm.ToggleStartMenu()
	case StepContextMenu:
		return wm.OpenContextMenu(s.At.X, s.At.Y)
	case StepDismiss:
		return s.Enabled && wm.DismissOverlays()
	case StepShutdown:
		return s.Enabled && wm.Shutdown()
	}
	return false
}
