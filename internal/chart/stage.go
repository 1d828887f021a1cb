// Package chart lays out the brush stage on the cell grid and draws the
// series, the selection, and the drag overlay into a core.Screen.
package chart

import (
	"github.com/vovakirdan/tui-brush/internal/brush"
	"github.com/vovakirdan/tui-brush/internal/core"
)

// Stage maps between screen cells and stage coordinates. One stage unit is
// one cell; the stage origin is the top-left cell inside the frame.
type Stage struct {
	Area core.Rect // plot area in screen cells, frame excluded
}

// NewStage places a stage in the given screen area, leaving padding cells
// on each side plus a one-cell frame.
func NewStage(screen core.Rect, padding int) Stage {
	return Stage{Area: screen.Inset(padding + 1)}
}

// Bounds returns the legal selection area in stage coordinates.
func (s Stage) Bounds() brush.Bounds {
	return brush.Bounds{X0: 0, X1: float64(s.Area.W), Y0: 0, Y1: float64(s.Area.H)}
}

// Frame returns the rectangle the frame is drawn on.
func (s Stage) Frame() core.Rect {
	return core.NewRect(s.Area.X-1, s.Area.Y-1, s.Area.W+2, s.Area.H+2)
}

// ToStage converts a screen cell to stage coordinates.
func (s Stage) ToStage(x, y int) brush.Point {
	return brush.Point{X: float64(x - s.Area.X), Y: float64(y - s.Area.Y)}
}

// ToScreen converts a stage point to the screen cell holding it.
func (s Stage) ToScreen(p brush.Point) (int, int) {
	return s.Area.X + int(p.X), s.Area.Y + int(p.Y)
}

// Contains returns true if the screen cell is on the stage.
func (s Stage) Contains(x, y int) bool {
	return s.Area.Contains(x, y)
}

// SelectionRect returns the screen cells covered by an extent.
func (s Stage) SelectionRect(e brush.Extent) core.Rect {
	r := core.RectFromCorners(e.X0, e.Y0, e.X1, e.Y1)
	r.X += s.Area.X
	r.Y += s.Area.Y
	return r
}

// HitSelection returns true if the screen cell lies on the settled selection.
func (s Stage) HitSelection(st brush.State, x, y int) bool {
	if st.Empty() {
		return false
	}
	return s.SelectionRect(st.Selection()).Contains(x, y)
}

// ExtentFromFractions scales a 0..1 extent onto the stage bounds.
func (s Stage) ExtentFromFractions(x0, x1, y0, y1 float64) brush.Extent {
	b := s.Bounds()
	return brush.Extent{
		X0: b.X0 + core.ClampF(x0, 0, 1)*b.Width(),
		X1: b.X0 + core.ClampF(x1, 0, 1)*b.Width(),
		Y0: b.Y0 + core.ClampF(y0, 0, 1)*b.Height(),
		Y1: b.Y0 + core.ClampF(y1, 0, 1)*b.Height(),
	}
}
