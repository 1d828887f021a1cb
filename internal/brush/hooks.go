package brush

// SelectionHooks are optional callbacks for pointer activity on the
// selection rectangle. Points are in stage units. Nil hooks are skipped.
type SelectionHooks struct {
	OnMouseMove  func(Point)
	OnMouseLeave func(Point)
	OnMouseUp    func(Point)
	OnClick      func(Point)
}

// SelectionPointer dispatches SelectionHooks from raw pointer events.
// Hooks fire only while the route lets the selection receive the pointer,
// so nothing is reported in the middle of a drag or a brush.
type SelectionPointer struct {
	Hooks SelectionHooks

	hovering bool
	pressed  bool
}

// NewSelectionPointer creates a dispatcher for hooks.
func NewSelectionPointer(hooks SelectionHooks) *SelectionPointer {
	return &SelectionPointer{Hooks: hooks}
}

// Hovering reports whether the pointer is over the selection.
func (sp *SelectionPointer) Hovering() bool {
	return sp.hovering
}

// Press records whether a press landed on the selection. hit reports
// whether p is inside the selection.
func (sp *SelectionPointer) Press(route Route, hit bool) {
	sp.pressed = route.SelectionReceivesPointer && hit
}

// Move reports pointer motion, firing OnMouseLeave once when the pointer
// stops being over a receiving selection.
func (sp *SelectionPointer) Move(route Route, hit bool, p Point) {
	if route.SelectionReceivesPointer && hit {
		sp.hovering = true
		if sp.Hooks.OnMouseMove != nil {
			sp.Hooks.OnMouseMove(p)
		}
		return
	}
	sp.Leave(p)
}

// Leave reports that the pointer left the selection, or the whole stage.
func (sp *SelectionPointer) Leave(p Point) {
	if !sp.hovering {
		return
	}
	sp.hovering = false
	if sp.Hooks.OnMouseLeave != nil {
		sp.Hooks.OnMouseLeave(p)
	}
}

// Release fires OnMouseUp for a release on the selection, then OnClick when
// the press was on the selection too.
func (sp *SelectionPointer) Release(route Route, hit bool, p Point) {
	pressed := sp.pressed
	sp.pressed = false
	if !route.SelectionReceivesPointer || !hit {
		return
	}
	if sp.Hooks.OnMouseUp != nil {
		sp.Hooks.OnMouseUp(p)
	}
	if pressed && sp.Hooks.OnClick != nil {
		sp.Hooks.OnClick(p)
	}
}
