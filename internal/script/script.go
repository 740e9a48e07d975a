// Package script replays YAML scripts against a headless desktop.
//
// A script is a viewport and a list of steps. Every step is a mapping with a
// single key naming the operation:
//
//	viewport: {width: 1280, height: 800}
//	steps:
//	  - open: mail
//	  - open: {type: blog, title: My Blog}
//	  - pointer: {phase: start, x: 400, y: 120}
//	  - pointer: {phase: move, x: 600, y: 300}
//	  - pointer: {phase: end}
//	  - minimize: blog
//	  - focus: blog
//	  - start_menu: toggle
//	  - context_menu: {x: 500, y: 400}
//	  - dismiss: true
//	  - shutdown: true
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/dodorz/glassdesk/internal/content"
	"github.com/dodorz/glassdesk/internal/geometry"
	"github.com/dodorz/glassdesk/internal/pointer"
	"gopkg.in/yaml.v3"
)

// ErrUnknownStep is returned for a step key the runner does not know.
var ErrUnknownStep = errors.New("unknown step")

// ErrInvalidViewport is returned for a viewport with a negative or missing
// dimension.
var ErrInvalidViewport = errors.New("invalid viewport")

// Step kinds.
const (
	StepOpen        = "open"
	StepClose       = "close"
	StepMinimize    = "minimize"
	StepFocus       = "focus"
	StepPointer     = "pointer"
	StepTouch       = "touch"
	StepViewport    = "viewport"
	StepStartMenu   = "start_menu"
	StepContextMenu = "context_menu"
	StepDismiss     = "dismiss"
	StepShutdown    = "shutdown"
)

// Size is a viewport in pixels.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Viewport converts s.
func (s Size) Viewport() geometry.Viewport {
	return geometry.Viewport{Width: s.Width, Height: s.Height}
}

func (s Size) validate() error {
	// The negated comparison also rejects NaN.
	if !(s.Width >= 0) || !(s.Height >= 0) || math.IsInf(s.Width, 0) || math.IsInf(s.Height, 0) {
		return fmt.Errorf("%w: %vx%v", ErrInvalidViewport, s.Width, s.Height)
	}
	return nil
}

// Script is a parsed replay file.
type Script struct {
	Viewport *Size `yaml:"viewport"`
	Steps    []Step `yaml:"steps"`
}

// PointerArgs are the fields of a pointer or touch step.
type PointerArgs struct {
	Phase  string  `yaml:"phase"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Button string  `yaml:"button"`
	ID     int     `yaml:"id"`
}

// Step is one decoded operation.
type Step struct {
	Kind string
	Line int

	Type    content.Type
	Title   string
	Phase   pointer.Phase
	Button  pointer.Button
	Pointer PointerArgs
	Size    Size
	At      geometry.Point
	Enabled bool
}

// UnmarshalYAML decodes a single-key step mapping.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: a step is a mapping with exactly one key", node.Line)
	}
	key, val := node.Content[0], node.Content[1]
	s.Kind, s.Line = key.Value, key.Line

	var err error
	switch s.Kind {
	case StepOpen:
		err = s.decodeOpen(val)
	case StepClose, StepMinimize, StepFocus:
		s.Type, err = decodeType(val)
	case StepPointer, StepTouch:
		err = s.decodePointer(val)
	case StepViewport:
		if err = val.Decode(&s.Size); err == nil {
			err = s.Size.validate()
		}
	case StepContextMenu:
		var at struct {
			X float64 `yaml:"x"`
			Y float64 `yaml:"y"`
		}
		err = val.Decode(&at)
		s.At = geometry.Point{X: at.X, Y: at.Y}
	case StepStartMenu:
		if val.Value != "toggle" {
			err = fmt.Errorf("start_menu only supports toggle, got %q", val.Value)
		}
		s.Enabled = true
	case StepDismiss, StepShutdown:
		err = val.Decode(&s.Enabled)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownStep, s.Kind)
	}
	if err != nil {
		return fmt.Errorf("line %d: %w", s.Line, err)
	}
	return nil
}

func (s *Step) decodeOpen(val *yaml.Node) error {
	if val.Kind == yaml.ScalarNode {
		t, err := decodeType(val)
		s.Type = t
		return err
	}
	var args struct {
		Type  string `yaml:"type"`
		Title string `yaml:"title"`
	}
	if err := val.Decode(&args); err != nil {
		return err
	}
	t, err := content.Parse(args.Type)
	if err != nil {
		return err
	}
	s.Type, s.Title = t, args.Title
	return nil
}

func (s *Step) decodePointer(val *yaml.Node) error {
	if err := val.Decode(&s.Pointer); err != nil {
		return err
	}
	phase, ok := pointer.ParsePhase(s.Pointer.Phase)
	if !ok {
		return fmt.Errorf("unknown pointer phase %q", s.Pointer.Phase)
	}
	s.Phase = phase
	switch s.Pointer.Button {
	case "", "left", "primary":
		s.Button = pointer.Primary
	case "right", "secondary":
		s.Button = pointer.Secondary
	case "middle":
		s.Button = pointer.Middle
	default:
		return fmt.Errorf("unknown button %q", s.Pointer.Button)
	}
	return nil
}

func decodeType(val *yaml.Node) (content.Type, error) {
	var name string
	if err := val.Decode(&name); err != nil {
		return "", err
	}
	return content.Parse(name)
}

// Parse decodes a script. Unknown top-level fields are rejected.
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if s.Viewport != nil {
		if err := s.Viewport.validate(); err != nil {
			return nil, fmt.Errorf("failed to parse script: %w", err)
		}
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	// #nosec G304 - path is supplied by the user on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(data)
}
