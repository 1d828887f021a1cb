package brush

// BeginBrush starts a new selection at p. The point is clamped into the
// bounds and the selection collapses to a zero-size rectangle there.
func BeginBrush(prev State, p Point) State {
	p = prev.Bounds.ClampPoint(p)

	next := prev
	next.Start = p
	next.End = p
	next.Extent = ExtentFrom(p, p)
	next.IsBrushing = true
	next.ActiveHandle = ""
	return next
}

// ExtendBrush stretches the selection being drawn from its anchor (Start)
// to p. The corners are left raw; FinishBrush normalizes them.
func ExtendBrush(prev State, p Point) State {
	p = prev.Bounds.ClampPoint(p)

	next := prev
	next.IsBrushing = true
	next.Extent = ExtentFrom(prev.Start, p)
	return next
}

// FinishBrush settles a drawn selection the same way a move drag ends.
func FinishBrush(prev State) State {
	return EndTransition(prev)
}

// Reset drops the selection to the zero-size rectangle at the bounds origin.
func Reset(prev State) State {
	origin := Point{X: prev.Bounds.X0, Y: prev.Bounds.Y0}

	next := prev
	next.Start = origin
	next.End = origin
	next.Extent = ExtentFrom(origin, origin)
	next.IsBrushing = false
	next.ActiveHandle = ""
	return next
}
