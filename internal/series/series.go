// Package series provides the built-in data sources plotted behind the brush.
// Each series registers itself with the registry on import.
package series

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-brush/internal/registry"
)

func init() {
	registry.Register("sine", func() registry.Series { return Sine{} })
	registry.Register("walk", func() registry.Series { return Walk{} })
	registry.Register("steps", func() registry.Series { return Steps{} })
}

// Sine is two periods of a sine wave with a seeded phase.
type Sine struct{}

func (Sine) ID() string    { return "sine" }
func (Sine) Title() string { return "Sine Wave" }

func (Sine) Sample(n int, seed int64) []float64 {
	phase := float64(seed%360) * math.Pi / 180
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(4*math.Pi*float64(i)/float64(max(n, 1)) + phase)
	}
	return out
}

// Walk is a seeded random walk.
type Walk struct{}

func (Walk) ID() string    { return "walk" }
func (Walk) Title() string { return "Random Walk" }

func (Walk) Sample(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	v := 0.0
	for i := range out {
		v += rng.NormFloat64()
		out[i] = v
	}
	return out
}

// Steps is a staircase that changes level at seeded intervals.
type Steps struct{}

func (Steps) ID() string    { return "steps" }
func (Steps) Title() string { return "Step Levels" }

func (Steps) Sample(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	level := float64(rng.Intn(10))
	for i := range out {
		if rng.Intn(8) == 0 {
			level = float64(rng.Intn(10))
		}
		out[i] = level
	}
	return out
}

// Range returns the minimum and maximum of values. Empty input gives (0, 0).
func Range(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
