// Package pointer turns device input into one device-agnostic event stream.
//
// Mouse and single-finger touch both map onto Start, Move, End and Cancel so
// the desktop runs a single drag algorithm for either.
package pointer

import "github.com/dodorz/glassdesk/internal/geometry"

// Phase is the stage of a pointer gesture.
type Phase int

const (
	Start Phase = iota
	Move
	End
	// Cancel means the input stream was lost. It ends any session like End.
	Cancel
)

func (p Phase) String() string {
	switch p {
	case Start:
		return "start"
	case Move:
		return "move"
	case End:
		return "end"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, bool) {
	switch s {
	case "start", "down":
		return Start, true
	case "move":
		return Move, true
	case "end", "up":
		return End, true
	case "cancel":
		return Cancel, true
	}
	return 0, false
}

// Button identifies which button started a gesture.
type Button int

const (
	NoButton Button = iota
	Primary
	Secondary
	Middle
)

// Source is the device family that produced an event.
type Source int

const (
	Mouse Source = iota
	Touch
)

// MousePointerID is the pointer id of the (single) mouse.
const MousePointerID = 0

// TouchPointerBase offsets touch identifiers so they never collide with the mouse.
const TouchPointerBase = 1000

// Event is one abstract pointer event in viewport pixels.
type Event struct {
	Phase     Phase
	PointerID int
	At        geometry.Point
	Button    Button
	Source    Source
}

// Handler consumes pointer events. It returns true when state changed.
type Handler interface {
	HandlePointer(Event) bool
}
