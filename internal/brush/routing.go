package brush

// Style is presentation passed through to the renderer for the selected box.
// It has no effect on geometry.
type Style struct {
	Foreground string
	Background string
	Border     string
}

// Options configure how a front end wires pointer events to the controller.
type Options struct {
	// DisableDraggingSelection stops presses on the selection from starting a drag.
	DisableDraggingSelection bool

	// UseWindowMoveEvents hands release/leave handling to a window-level
	// listener instead of the stage overlay.
	UseWindowMoveEvents bool

	SelectedBoxStyle Style
}

// Route says which surfaces should react to which pointer events.
type Route struct {
	// OverlayActive is true while a drag is in progress: a stage-wide
	// surface captures moves so the pointer can leave the selection.
	OverlayActive bool

	// OverlayEndsDrag is true when release or leave on the overlay ends the drag.
	OverlayEndsDrag bool

	// SelectionStartsDrag is true when a press on the selection starts a drag.
	SelectionStartsDrag bool

	// SelectionReceivesPointer is false while brushing or while a handle is held.
	SelectionReceivesPointer bool

	// SelectionReleaseEndsDrag is true when release on the selection ends the drag.
	SelectionReleaseEndsDrag bool
}

// Routing computes the pointer routing for the current state.
func Routing(s State, opts Options, dragging bool) Route {
	return Route{
		OverlayActive:            dragging,
		OverlayEndsDrag:          dragging && !opts.UseWindowMoveEvents,
		SelectionStartsDrag:      !opts.DisableDraggingSelection,
		SelectionReceivesPointer: !s.IsBrushing && s.ActiveHandle == "",
		SelectionReleaseEndsDrag: !opts.UseWindowMoveEvents,
	}
}
