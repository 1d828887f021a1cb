// Package brush implements rectangular brush selection over a 2D stage.
// It translates drag gestures into clamped, normalized selection rectangles
// and reports the selection lifecycle to listeners. The package has no
// terminal or network dependencies; front ends feed it gestures and render
// whatever geometry it produces.
package brush

import (
	"errors"
	"fmt"
	"math"
)

// Validation errors returned by NewState.
var (
	ErrInvalidBounds     = errors.New("brush: invalid bounds")
	ErrExtentOutOfBounds = errors.New("brush: extent outside bounds")
)

// Point is a coordinate in stage space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is the rectangle the selection may not leave.
type Bounds struct {
	X0 float64 `json:"x0"`
	X1 float64 `json:"x1"`
	Y0 float64 `json:"y0"`
	Y1 float64 `json:"y1"`
}

// Validate reports whether the bounds are well formed (X0 <= X1, Y0 <= Y1).
func (b Bounds) Validate() error {
	if math.IsNaN(b.X0) || math.IsNaN(b.X1) || math.IsNaN(b.Y0) || math.IsNaN(b.Y1) {
		return fmt.Errorf("%w: NaN coordinate", ErrInvalidBounds)
	}
	if b.X0 > b.X1 {
		return fmt.Errorf("%w: x0 %g > x1 %g", ErrInvalidBounds, b.X0, b.X1)
	}
	if b.Y0 > b.Y1 {
		return fmt.Errorf("%w: y0 %g > y1 %g", ErrInvalidBounds, b.Y0, b.Y1)
	}
	return nil
}

// Contains returns true if p lies inside the bounds (edges inclusive).
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.X0 && p.X <= b.X1 && p.Y >= b.Y0 && p.Y <= b.Y1
}

// ClampPoint moves p to the nearest point inside the bounds.
func (b Bounds) ClampPoint(p Point) Point {
	return Point{
		X: math.Max(b.X0, math.Min(b.X1, p.X)),
		Y: math.Max(b.Y0, math.Min(b.Y1, p.Y)),
	}
}

// Width returns X1 - X0.
func (b Bounds) Width() float64 { return b.X1 - b.X0 }

// Height returns Y1 - Y0.
func (b Bounds) Height() float64 { return b.Y1 - b.Y0 }

// Extent is the live corner pair of the selection. While a drag is in
// progress the corners may be in any order.
type Extent struct {
	X0 float64 `json:"x0"`
	X1 float64 `json:"x1"`
	Y0 float64 `json:"y0"`
	Y1 float64 `json:"y1"`
}

// ExtentFrom builds an extent from two corner points.
func ExtentFrom(start, end Point) Extent {
	return Extent{X0: start.X, X1: end.X, Y0: start.Y, Y1: end.Y}
}

// Min returns the top-left corner of the extent.
func (e Extent) Min() Point {
	return Point{X: math.Min(e.X0, e.X1), Y: math.Min(e.Y0, e.Y1)}
}

// Max returns the bottom-right corner of the extent.
func (e Extent) Max() Point {
	return Point{X: math.Max(e.X0, e.X1), Y: math.Max(e.Y0, e.Y1)}
}

// Width returns the absolute horizontal size.
func (e Extent) Width() float64 { return math.Abs(e.X1 - e.X0) }

// Height returns the absolute vertical size.
func (e Extent) Height() float64 { return math.Abs(e.Y1 - e.Y0) }

// Contains returns true if p lies inside the normalized extent.
func (e Extent) Contains(p Point) bool {
	lo, hi := e.Min(), e.Max()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}

// State is the full selection record.
//
// When IsBrushing is false, Start and End are the min and max corners of
// Extent. While brushing, Extent tracks the dragged rectangle and Start/End
// still hold the normalized values from before the drag.
type State struct {
	Start        Point  `json:"start"`
	End          Point  `json:"end"`
	Extent       Extent `json:"extent"`
	IsBrushing   bool   `json:"isBrushing"`
	ActiveHandle string `json:"activeHandle,omitempty"` // "" when no handle is held
	Bounds       Bounds `json:"bounds"`
}

// NewState returns a settled state for the given bounds and extent.
// The bounds must be well formed and the extent must lie inside them.
func NewState(bounds Bounds, extent Extent) (State, error) {
	if err := bounds.Validate(); err != nil {
		return State{}, err
	}
	start, end := NormalizeExtent(extent)
	if !bounds.Contains(start) || !bounds.Contains(end) {
		return State{}, fmt.Errorf("%w: extent %+v, bounds %+v", ErrExtentOutOfBounds, extent, bounds)
	}
	return State{
		Start:  start,
		End:    end,
		Extent: extent,
		Bounds: bounds,
	}, nil
}

// Empty returns true if the selection has no area.
func (s State) Empty() bool {
	return s.End.X-s.Start.X <= 0 || s.End.Y-s.Start.Y <= 0
}

// Selection returns the normalized rectangle as an extent. While brushing it
// reflects the live extent rather than the stale Start/End.
func (s State) Selection() Extent {
	if s.IsBrushing {
		return ExtentFrom(s.Extent.Min(), s.Extent.Max())
	}
	return ExtentFrom(s.Start, s.End)
}

// Updater maps one state snapshot to the next.
type Updater func(State) State

// UpdateFunc applies an updater to the authoritative state owned by the caller.
type UpdateFunc func(Updater)
