package records

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// BoundsMargin is added on both sides of the data extent on every axis.
const BoundsMargin = 1.0

// AxisBounds is the visible range for each spatial axis.
type AxisBounds struct {
	r3.Box
}

// X returns the x-axis range.
func (b AxisBounds) X() (min, max float64) { return b.Min.X, b.Max.X }

// Y returns the y-axis range.
func (b AxisBounds) Y() (min, max float64) { return b.Min.Y, b.Max.Y }

// Z returns the z-axis range.
func (b AxisBounds) Z() (min, max float64) { return b.Min.Z, b.Max.Z }

// ComputeBounds covers every true and estimated coordinate in s, expanded
// by BoundsMargin. An empty set returns *InsufficientDataError; callers
// should fall back to automatic axis scaling.
func ComputeBounds(s RecordSet) (AxisBounds, error) {
	if s.Empty() {
		return AxisBounds{}, &InsufficientDataError{Op: "compute bounds"}
	}

	n := 2 * s.Len()
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	zs := make([]float64, 0, n)
	for _, r := range s.records {
		xs = append(xs, r.True.X, r.Estimated.X)
		ys = append(ys, r.True.Y, r.Estimated.Y)
		zs = append(zs, r.True.Z, r.Estimated.Z)
	}

	return AxisBounds{Box: r3.Box{
		Min: r3.Vec{X: floats.Min(xs) - BoundsMargin, Y: floats.Min(ys) - BoundsMargin, Z: floats.Min(zs) - BoundsMargin},
		Max: r3.Vec{X: floats.Max(xs) + BoundsMargin, Y: floats.Max(ys) + BoundsMargin, Z: floats.Max(zs) + BoundsMargin},
	}}, nil
}
