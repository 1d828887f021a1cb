// Package remote serves the brush over a websocket: clients stream pointer
// or touch events as JSON frames and receive state, move, and end frames
// back. Each connection owns its own selection.
package remote

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-brush/internal/brush"
)

var (
	// ErrUnknownType is returned for a frame whose t field is not recognized.
	ErrUnknownType = errors.New("remote: unknown message type")

	// ErrUnknownKind is returned for a gesture kind other than touch or pointer.
	ErrUnknownKind = errors.New("remote: unknown gesture kind")
)

// Message types sent by clients.
const (
	MsgDown  = "down"
	MsgMove  = "move"
	MsgUp    = "up"
	MsgLeave = "leave" // pointer left the stage
	MsgReset = "reset"
	MsgState = "state" // ask for the current state
)

// Gesture kinds.
const (
	KindPointer = "pointer"
	KindTouch   = "touch"
)

// Reply types sent by the server.
const (
	ReplyState = "state"
	ReplyMove  = "move"
	ReplyEnd       = "end"
	ReplyError     = "error"
	ReplySelection = "selection" // pointer activity on the settled selection
)

// Selection pointer events carried by selection replies.
const (
	EventMouseMove  = "mousemove"
	EventMouseLeave = "mouseleave"
	EventMouseUp    = "mouseup"
	EventClick      = "click"
)

// Message is one client frame. Coordinates are in stage units.
type Message struct {
	T    string  `json:"t"`
	Kind string  `json:"kind,omitempty"` // pointer when empty
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	ID   int     `json:"id,omitempty"` // pointer or touch identifier
}

// Gesture resolves the frame into a brush gesture.
func (m Message) Gesture() (brush.Gesture, error) {
	switch m.Kind {
	case "", KindPointer:
		return brush.Pointer{PageX: m.X, PageY: m.Y}, nil
	case KindTouch:
		return brush.Touch{PageX: m.X, PageY: m.Y}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, m.Kind)
	}
}

// Reply is one server frame.
type Reply struct {
	T      string            `json:"t"`
	State  *brush.State      `json:"state,omitempty"`
	Move   string            `json:"move,omitempty"` // "move", or empty when the drag ended
	Coords *brush.PageCoords `json:"coords,omitempty"`
	Saved  string            `json:"saved,omitempty"` // selection ID when the end was stored
	Event  string            `json:"event,omitempty"` // selection pointer event
	Point  *brush.Point      `json:"point,omitempty"`
	Error  string            `json:"error,omitempty"`
}

func stateReply(st brush.State) Reply {
	return Reply{T: ReplyState, State: &st}
}

func moveReply(ev brush.MoveEvent) Reply {
	return Reply{T: ReplyMove, Move: ev.Type.String(), Coords: ev.Coords}
}

func selectionReply(event string, p brush.Point) Reply {
	return Reply{T: ReplySelection, Event: event, Point: &p}
}

func errorReply(err error) Reply {
	return Reply{T: ReplyError, Error: err.Error()}
}
