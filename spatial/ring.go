// Copyright 2025 The APH Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

// RingKind tags a ring as the filled boundary of a polygon or as a hole cut
// out of it.
type RingKind int

const (
	// Outer is the boundary of the filled area.
	Outer RingKind = iota
	// Hole is a region excluded from the filled area.
	Hole
)

func (k RingKind) String() string {
	if k == Hole {
		return "hole"
	}

	return "outer"
}

// Ring is a closed polygon boundary. Edges wrap from the last point back to
// the first, so the first point does not need to be repeated.
type Ring struct {
	Kind   RingKind
	Points []Point
}

// NewRing returns an outer ring over points.
func NewRing(points ...Point) Ring {
	return Ring{Kind: Outer, Points: points}
}

// NewHole returns a hole ring over points.
func NewHole(points ...Point) Ring {
	return Ring{Kind: Hole, Points: points}
}

// Polygon is one outer ring with zero or more holes.
type Polygon struct {
	Outer Ring
	Holes []Ring
}

// NewPolygon tags outer and holes with their kinds and returns the polygon.
func NewPolygon(outer Ring, holes ...Ring) Polygon {
	outer.Kind = Outer

	tagged := make([]Ring, len(holes))
	for i, h := range holes {
		h.Kind = Hole
		tagged[i] = h
	}

	return Polygon{Outer: outer, Holes: tagged}
}

// Contains reports whether p lies inside r using the nonzero winding rule.
//
// Edges crossing the scan line upwards count when p is on their left, edges
// crossing downwards count when p is on their right. Points exactly on the
// boundary may go either way.
func (r Ring) Contains(p Point) bool {
	n := len(r.Points)
	if n == 0 {
		return false
	}

	wn := 0
	a := r.Points[n-1]

	for _, b := range r.Points {
		cross := (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)

		if a.Y <= p.Y {
			if b.Y > p.Y && cross > 0 {
				wn++
			}
		} else if b.Y <= p.Y && cross < 0 {
			wn--
		}

		a = b
	}

	return wn != 0
}

// Contains reports whether p is inside the outer ring and outside every hole.
func (pg Polygon) Contains(p Point) bool {
	if !pg.Outer.Contains(p) {
		return false
	}

	for _, h := range pg.Holes {
		if h.Contains(p) {
			return false
		}
	}

	return true
}

// Centroid returns the area centroid of r. Rings without area fall back to
// the mean of their vertices.
func (r Ring) Centroid() Point {
	n := len(r.Points)
	if n == 0 {
		return Point{}
	}

	var cx, cy, area float64

	a := r.Points[n-1]
	for _, b := range r.Points {
		f := a.X*b.Y - b.X*a.Y
		area += f
		cx += (a.X + b.X) * f
		cy += (a.Y + b.Y) * f
		a = b
	}

	if area == 0 {
		var sx, sy float64
		for _, p := range r.Points {
			sx += p.X
			sy += p.Y
		}

		return Point{X: sx / float64(n), Y: sy / float64(n)}
	}

	area *= 0.5

	return Point{X: cx / (6 * area), Y: cy / (6 * area)}
}
