package brush

// Controller turns drag gestures into state transitions and notifications.
// It holds no selection state of its own: every transition is committed
// through Update, which applies it to whatever container owns the state.
type Controller struct {
	// Update commits a transition. Required.
	Update UpdateFunc

	// OnMove, if set, is told about drag start, every move tick, and drag end.
	OnMove MoveListener

	// OnEnd, if set, receives the normalized state after each completed drag.
	OnEnd EndListener
}

// NewController creates a controller that commits through update.
func NewController(update UpdateFunc, onMove MoveListener, onEnd EndListener) *Controller {
	return &Controller{
		Update: update,
		OnMove: onMove,
		OnEnd:  onEnd,
	}
}

// DragStart reports the gesture's page coordinates to the move listener.
// The state is not touched.
func (c *Controller) DragStart(g Gesture) {
	if c.OnMove == nil {
		return
	}
	ev := MoveEvent{Type: MoveTypeMove}
	if g != nil {
		x, y := g.Page()
		ev.Coords = &PageCoords{PageX: x, PageY: y}
	}
	c.OnMove(ev)
}

// DragMove translates the extent by the clamped delta and marks the state as brushing.
func (c *Controller) DragMove(d DragDelta) {
	c.Update(MoveTransition(d))
	if c.OnMove != nil {
		c.OnMove(MoveEvent{Type: MoveTypeMove})
	}
}

// DragEnd normalizes the extent into Start/End, clears IsBrushing, and
// hands the committed state to the end listener.
func (c *Controller) DragEnd() {
	c.commitEnd(EndTransition)
	if c.OnMove != nil {
		c.OnMove(MoveEvent{Type: MoveNone})
	}
}

// BrushStart begins a new selection at p (clamped into the bounds).
func (c *Controller) BrushStart(p Point) {
	c.Update(func(prev State) State { return BeginBrush(prev, p) })
}

// BrushMove stretches the new selection towards p.
func (c *Controller) BrushMove(p Point) {
	c.Update(func(prev State) State { return ExtendBrush(prev, p) })
}

// BrushEnd settles the new selection and notifies the end listener.
func (c *Controller) BrushEnd() {
	c.commitEnd(FinishBrush)
}

// Reset collapses the selection to the bounds origin.
func (c *Controller) Reset() {
	c.Update(Reset)
}

// commitEnd applies an end transition and forwards the value it produced,
// so the listener sees exactly what was committed.
func (c *Controller) commitEnd(transition Updater) {
	var committed State
	c.Update(func(prev State) State {
		committed = transition(prev)
		return committed
	})
	if c.OnEnd != nil {
		c.OnEnd(committed)
	}
}
