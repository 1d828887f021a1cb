package chart

import (
	"github.com/vovakirdan/tui-brush/internal/brush"
	"github.com/vovakirdan/tui-brush/internal/core"
	"github.com/vovakirdan/tui-brush/internal/series"
)

// bar glyphs from empty to full, eighths of a cell
var bars = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Plot draws values as vertical bars filling area, one value per column.
// Values are resampled when there are more or fewer than columns.
func Plot(dst *core.Screen, values []float64, area core.Rect) {
	if area.Empty() || len(values) == 0 {
		return
	}
	lo, hi := series.Range(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	for col := 0; col < area.W; col++ {
		v := values[col*len(values)/area.W]
		// height in eighths of a cell
		eighths := int((v - lo) / span * float64(area.H*8))
		eighths = core.Clamp(eighths, 1, area.H*8)

		for row := 0; row < area.H; row++ {
			y := area.Bottom() - 1 - row
			fill := core.Clamp(eighths-row*8, 0, 8)
			if fill == 0 {
				break
			}
			dst.SetColored(area.X+col, y, bars[fill], core.ColorChart)
		}
	}
}

// DrawFrame draws the stage frame. While dragging it switches to the overlay
// color, marking the stage-wide capture surface.
func DrawFrame(dst *core.Screen, s Stage, overlay bool) {
	c := core.ColorAxis
	if overlay {
		c = core.ColorOverlay
	}
	dst.DrawBox(s.Frame(), c)
}

// DrawSelection tints the selected cells and outlines them.
func DrawSelection(dst *core.Screen, s Stage, st brush.State) {
	ext := st.Selection()
	if ext.Width() <= 0 || ext.Height() <= 0 {
		return
	}
	r := s.SelectionRect(ext).Intersect(s.Area)
	dst.TintRect(r, core.ColorSelection)

	// Outline only where the rectangle is big enough to keep the bars visible.
	if r.W >= 3 && r.H >= 3 {
		for x := r.X; x < r.Right(); x++ {
			dst.Tint(x, r.Y, core.ColorSelectionEdge)
			dst.Tint(x, r.Bottom()-1, core.ColorSelectionEdge)
		}
		for y := r.Y; y < r.Bottom(); y++ {
			dst.Tint(r.X, y, core.ColorSelectionEdge)
			dst.Tint(r.Right()-1, y, core.ColorSelectionEdge)
		}
	}
}
