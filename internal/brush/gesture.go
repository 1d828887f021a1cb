package brush

// Gesture is the event that carried a drag tick. It is either Touch or
// Pointer; front ends pick the variant once when they decode raw input.
type Gesture interface {
	// Page returns the page-relative coordinates of the gesture.
	Page() (x, y float64)

	gesture()
}

// Touch is a touch-originated gesture at its first touch point.
type Touch struct {
	PageX float64
	PageY float64
}

// Page implements Gesture.
func (t Touch) Page() (float64, float64) { return t.PageX, t.PageY }

func (Touch) gesture() {}

// Pointer is a mouse or pen gesture.
type Pointer struct {
	PageX float64
	PageY float64
}

// Page implements Gesture.
func (p Pointer) Page() (float64, float64) { return p.PageX, p.PageY }

func (Pointer) gesture() {}

// DragDelta is one tick from the drag collaborator: the displacement since
// the gesture started plus the event that produced it. It is consumed
// immediately and never retained.
type DragDelta struct {
	DX    float64
	DY    float64
	Event Gesture
}

// MoveType tags a move notification.
type MoveType int

const (
	// MoveNone is the argument-less notification sent when a drag ends.
	MoveNone MoveType = iota
	// MoveTypeMove is sent at drag start and on every move tick.
	MoveTypeMove
)

// String returns "move" or "" for MoveNone.
func (t MoveType) String() string {
	if t == MoveTypeMove {
		return "move"
	}
	return ""
}

// PageCoords are the page coordinates reported at drag start.
type PageCoords struct {
	PageX float64 `json:"pageX"`
	PageY float64 `json:"pageY"`
}

// MoveEvent is delivered to a MoveListener. Coords is only set at drag start.
type MoveEvent struct {
	Type   MoveType
	Coords *PageCoords
}

// MoveListener observes selection movement (for example to drive a tooltip).
type MoveListener func(MoveEvent)

// EndListener receives the normalized state once a drag completes.
type EndListener func(State)
