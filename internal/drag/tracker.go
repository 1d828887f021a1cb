// Package drag detects drag gestures from absolute pointer positions and
// reports them as start / move / end callbacks with deltas measured from the
// point where the drag began.
package drag

import "github.com/vovakirdan/tui-brush/internal/brush"

// Handlers receive the drag lifecycle. Any of them may be nil.
type Handlers struct {
	OnDragStart func(brush.Gesture)
	OnDragMove  func(brush.DragDelta)
	OnDragEnd   func()
}

// Tracker tracks one drag at a time.
type Tracker struct {
	handlers Handlers
	external func() bool

	active bool
	origin brush.Point
	last   brush.Point
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithExternalDragging makes Dragging report a flag owned by another
// controller (for example a window-level listener).
func WithExternalDragging(fn func() bool) Option {
	return func(t *Tracker) {
		t.external = fn
	}
}

// NewTracker creates a tracker that reports to h.
func NewTracker(h Handlers, opts ...Option) *Tracker {
	t := &Tracker{handlers: h}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins a drag at the gesture's position. The delta resets to zero.
func (t *Tracker) Start(g brush.Gesture) {
	x, y := g.Page()
	t.active = true
	t.origin = brush.Point{X: x, Y: y}
	t.last = t.origin

	if t.handlers.OnDragStart != nil {
		t.handlers.OnDragStart(g)
	}
}

// Move reports the displacement from the drag origin. It is ignored when no
// drag is active.
func (t *Tracker) Move(g brush.Gesture) {
	if !t.active {
		return
	}
	x, y := g.Page()
	t.last = brush.Point{X: x, Y: y}

	if t.handlers.OnDragMove != nil {
		d := t.Delta()
		t.handlers.OnDragMove(brush.DragDelta{DX: d.X, DY: d.Y, Event: g})
	}
}

// End finishes the active drag. Calling it without an active drag does nothing.
func (t *Tracker) End() {
	if !t.active {
		return
	}
	t.active = false

	if t.handlers.OnDragEnd != nil {
		t.handlers.OnDragEnd()
	}
}

// Dragging reports whether a drag is in progress.
func (t *Tracker) Dragging() bool {
	if t.external != nil {
		return t.external()
	}
	return t.active
}

// Active reports whether this tracker itself has a drag open, regardless of
// any external flag.
func (t *Tracker) Active() bool {
	return t.active
}

// Delta returns the displacement from the origin of the current drag.
func (t *Tracker) Delta() brush.Point {
	return brush.Point{
		X: t.last.X - t.origin.X,
		Y: t.last.Y - t.origin.Y,
	}
}

// Origin returns where the current drag began.
func (t *Tracker) Origin() brush.Point {
	return t.origin
}
