package core

// Color identifies the role of a screen cell. The platform maps each role to
// a terminal style, so core code never deals with escape sequences.
type Color uint8

// Cell roles used by the chart stage.
const (
	ColorDefault Color = iota
	ColorChart         // series marks
	ColorAxis          // stage frame and axis ticks
	ColorSelection     // cells inside the brush
	ColorSelectionEdge // brush outline
	ColorOverlay       // stage-wide capture frame shown while dragging
	ColorStatus        // status line text
	ColorMuted         // hints
)

// String returns the role name.
func (c Color) String() string {
	switch c {
	case ColorChart:
		return "chart"
	case ColorAxis:
		return "axis"
	case ColorSelection:
		return "selection"
	case ColorSelectionEdge:
		return "selection-edge"
	case ColorOverlay:
		return "overlay"
	case ColorStatus:
		return "status"
	case ColorMuted:
		return "muted"
	default:
		return "default"
	}
}
