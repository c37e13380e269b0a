// Copyright 2025 The APH Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"math"
	"slices"
)

// NoSegment is the quality reported by InteriorPoint when no scan line
// segment with an interior midpoint was found.
var NoSegment = math.Inf(-1)

// CandidateSegment is the stretch of the scan line between two consecutive
// ring crossings.
type CandidateSegment struct {
	X1, X2 float64
}

// Length returns the segment length.
func (s CandidateSegment) Length() float64 {
	return math.Abs(s.X2 - s.X1)
}

// Mid returns the x coordinate of the segment midpoint.
func (s CandidateSegment) Mid() float64 {
	return (s.X1 + s.X2) / 2
}

// crossings returns the sorted x coordinates where r's edges meet the
// horizontal line at y. Vertices on the line are reported once per
// touching edge, so duplicates are expected.
func (r Ring) crossings(y float64) []float64 {
	n := len(r.Points)
	if n == 0 {
		return nil
	}

	xs := make([]float64, 0, n)
	a := r.Points[n-1]

	for _, b := range r.Points {
		if (y <= a.Y && b.Y <= y) || (a.Y <= y && y <= b.Y) {
			if a.Y == b.Y {
				// horizontal edge on the scan line
				xs = append(xs, b.X)
			} else {
				xs = append(xs, (y-a.Y)/(b.Y-a.Y)*(b.X-a.X)+a.X)
			}
		}

		a = b
	}

	slices.Sort(xs)

	return xs
}

// InteriorPoint returns a point inside r on the horizontal line through
// center, together with the length of the segment it was taken from.
//
// The point is the midpoint of the longest scan line segment whose midpoint
// lies inside r; on ties the leftmost segment wins. When no such segment
// exists the result is (center.X, center.Y) with quality NoSegment.
//
// Only r itself is scanned; holes of the enclosing polygon are not
// considered.
func (r Ring) InteriorPoint(center Point) (Point, float64) {
	y := center.Y
	region := NewPolygon(r)

	xs := r.crossings(y)

	bestX := math.NaN()
	best := NoSegment

	for i := 1; i < len(xs); i++ {
		seg := CandidateSegment{X1: xs[i-1], X2: xs[i]}
		if seg.Length() <= best {
			continue
		}

		x := seg.Mid()
		if region.Contains(Point{X: x, Y: y}) {
			bestX = x
			best = seg.Length()
		}
	}

	if math.IsNaN(bestX) {
		return Point{X: center.X, Y: y}, NoSegment
	}

	return Point{X: bestX, Y: y}, best
}
