package chart

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-brush/internal/brush"
	"github.com/vovakirdan/tui-brush/internal/core"
)

func TestStageMapping(t *testing.T) {
	s := NewStage(core.NewRect(0, 0, 40, 12), 1)

	if s.Area != core.NewRect(2, 2, 36, 8) {
		t.Fatalf("Area = %+v, expected {2 2 36 8}", s.Area)
	}
	if b := s.Bounds(); b != (brush.Bounds{X0: 0, X1: 36, Y0: 0, Y1: 8}) {
		t.Errorf("Bounds() = %+v", b)
	}

	p := s.ToStage(5, 3)
	if p != (brush.Point{X: 3, Y: 1}) {
		t.Errorf("ToStage(5, 3) = %+v, expected {3 1}", p)
	}
	if x, y := s.ToScreen(p); x != 5 || y != 3 {
		t.Errorf("ToScreen() = (%d, %d), expected (5, 3)", x, y)
	}

	if s.Contains(1, 1) || !s.Contains(2, 2) || s.Contains(38, 2) {
		t.Error("Contains() disagrees with Area")
	}
}

func TestStageSelectionHit(t *testing.T) {
	s := NewStage(core.NewRect(0, 0, 40, 12), 0)
	st := brush.State{
		Start: brush.Point{X: 4, Y: 2},
		End:   brush.Point{X: 10, Y: 5},
	}

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"inside", 1 + 6, 1 + 3, true},
		{"top-left", 1 + 4, 1 + 2, true},
		{"right edge exclusive", 1 + 10, 1 + 3, false},
		{"outside", 1, 1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.HitSelection(st, tc.x, tc.y); got != tc.want {
				t.Errorf("HitSelection(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.want)
			}
		})
	}

	empty := brush.State{Start: brush.Point{X: 4, Y: 4}, End: brush.Point{X: 4, Y: 4}}
	if s.HitSelection(empty, 5, 5) {
		t.Error("empty selection should never be hit")
	}
}

func TestExtentFromFractions(t *testing.T) {
	s := NewStage(core.NewRect(0, 0, 102, 52), 0)
	got := s.ExtentFromFractions(0.1, 0.3, -1, 2)
	want := brush.Extent{X0: 10, X1: 30, Y0: 0, Y1: 50}
	if got != want {
		t.Errorf("ExtentFromFractions() = %+v, expected %+v", got, want)
	}
}

func TestPlotFillsEveryColumn(t *testing.T) {
	dst := core.NewScreen(10, 4)
	Plot(dst, []float64{0, 1, 2, 3, 4}, core.NewRect(0, 0, 10, 4))

	bottom := dst.Row(3)
	if strings.Contains(bottom, " ") {
		t.Errorf("bottom row %q should have a bar in every column", bottom)
	}
	if dst.Get(9, 0) != '█' {
		t.Errorf("maximum value should reach the top, got %q", dst.Get(9, 0))
	}
	if dst.GetCell(0, 3).Color != core.ColorChart {
		t.Error("bars should use the chart color")
	}
}

func TestDrawSelectionAndFrame(t *testing.T) {
	s := NewStage(core.NewRect(0, 0, 20, 10), 0)
	dst := core.NewScreen(20, 10)

	DrawFrame(dst, s, false)
	if dst.GetCell(0, 0).Color != core.ColorAxis {
		t.Error("idle frame should use the axis color")
	}
	DrawFrame(dst, s, true)
	if dst.GetCell(0, 0).Color != core.ColorOverlay {
		t.Error("dragging frame should use the overlay color")
	}

	st := brush.State{
		Start: brush.Point{X: 2, Y: 1},
		End:   brush.Point{X: 8, Y: 6},
	}
	DrawSelection(dst, s, st)

	if c := dst.GetCell(1+5, 1+3).Color; c != core.ColorSelection {
		t.Errorf("inner cell color = %v, expected selection", c)
	}
	if c := dst.GetCell(1+2, 1+1).Color; c != core.ColorSelectionEdge {
		t.Errorf("corner cell color = %v, expected selection-edge", c)
	}
	if c := dst.GetCell(1+9, 1+3).Color; c == core.ColorSelection {
		t.Error("cell outside the selection was tinted")
	}
}
