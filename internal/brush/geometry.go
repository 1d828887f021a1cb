package brush

import "math"

// ClampDelta limits a drag displacement so that the pre-drag selection
// (Start/End) stays inside the bounds. Moving right is limited by the room
// to the right of End; moving left by the room to the left of Start.
// Vertical movement follows the same rule.
func ClampDelta(s State, dx, dy float64) (validDx, validDy float64) {
	if dx > 0 {
		validDx = math.Min(dx, s.Bounds.X1-s.End.X)
	} else {
		validDx = math.Max(dx, s.Bounds.X0-s.Start.X)
	}

	if dy > 0 {
		validDy = math.Min(dy, s.Bounds.Y1-s.End.Y)
	} else {
		validDy = math.Max(dy, s.Bounds.Y0-s.Start.Y)
	}
	return validDx, validDy
}

// NormalizeExtent reorders the extent corners so that start <= end on both axes.
func NormalizeExtent(e Extent) (start, end Point) {
	return e.Min(), e.Max()
}

// MoveTransition returns the updater for one drag-move tick. The delta is the
// displacement since the drag started; the extent is recomputed from the
// pre-drag Start/End so repeated ticks never accumulate.
func MoveTransition(d DragDelta) Updater {
	return func(prev State) State {
		validDx, validDy := ClampDelta(prev, d.DX, d.DY)

		next := prev
		next.IsBrushing = true
		next.Extent = Extent{
			X0: prev.Start.X + validDx,
			X1: prev.End.X + validDx,
			Y0: prev.Start.Y + validDy,
			Y1: prev.End.Y + validDy,
		}
		return next
	}
}

// EndTransition normalizes the extent into Start/End and clears IsBrushing.
func EndTransition(prev State) State {
	next := prev
	next.IsBrushing = false
	next.Start, next.End = NormalizeExtent(prev.Extent)
	return next
}
