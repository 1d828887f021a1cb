package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectFromCorners(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		expected       Rect
	}{
		{"whole cells", 2, 3, 6, 5, NewRect(2, 3, 4, 2)},
		{"reversed", 6, 5, 2, 3, NewRect(2, 3, 4, 2)},
		{"fractional grows outwards", 1.5, 0.2, 3.1, 1.9, NewRect(1, 0, 3, 2)},
		{"zero size", 4, 4, 4, 4, NewRect(4, 4, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := RectFromCorners(tc.x0, tc.y0, tc.x1, tc.y1)
			if result != tc.expected {
				t.Errorf("RectFromCorners() = %+v, expected %+v", result, tc.expected)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 10, 10)

	if got := a.Intersect(NewRect(5, 5, 10, 10)); got != NewRect(5, 5, 5, 5) {
		t.Errorf("Intersect() = %+v, expected {5 5 5 5}", got)
	}
	if got := a.Intersect(NewRect(20, 0, 5, 5)); !got.Empty() {
		t.Errorf("disjoint Intersect() = %+v, expected empty", got)
	}
}

func TestRectInset(t *testing.T) {
	if got := NewRect(0, 0, 10, 6).Inset(1); got != NewRect(1, 1, 8, 4) {
		t.Errorf("Inset(1) = %+v", got)
	}
	if got := NewRect(0, 0, 1, 1).Inset(2); !got.Empty() {
		t.Errorf("Inset past zero = %+v, expected empty", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}

	if ClampF(15.5, 0, 10) != 10 || ClampF(-1, 0, 10) != 0 {
		t.Error("ClampF should clamp to range")
	}
}
