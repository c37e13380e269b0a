// Copyright 2025 The APH Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyGeometry is returned when a geometry has neither a point nor a polygon.
var ErrEmptyGeometry = errors.New("spatial: empty geometry")

// Geometry is either a single point or a polygon, as selected in the editor.
type Geometry struct {
	Point   *Point
	Polygon *Polygon
}

// PointGeometry wraps p.
func PointGeometry(p Point) Geometry {
	return Geometry{Point: &p}
}

// PolygonGeometry wraps pg.
func PolygonGeometry(pg Polygon) Geometry {
	return Geometry{Polygon: &pg}
}

// IsEmpty reports whether g holds nothing.
func (g Geometry) IsEmpty() bool {
	return g.Point == nil && g.Polygon == nil
}

type geoJSONGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// UnmarshalJSON decodes a GeoJSON Point or Polygon. The first polygon ring is
// the outer ring, the rest are holes.
func (g *Geometry) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var raw geoJSONGeometry
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing geometry: %w", err)
	}

	switch raw.Type {
	case "Point":
		var c []float64
		if err := json.Unmarshal(raw.Coordinates, &c); err != nil {
			return fmt.Errorf("parsing point coordinates: %w", err)
		}

		if len(c) < 2 {
			return fmt.Errorf("spatial: point needs 2 coordinates, got %d", len(c))
		}

		*g = PointGeometry(Point{X: c[0], Y: c[1]})
	case "Polygon":
		var rings [][][]float64
		if err := json.Unmarshal(raw.Coordinates, &rings); err != nil {
			return fmt.Errorf("parsing polygon coordinates: %w", err)
		}

		if len(rings) == 0 {
			return ErrEmptyGeometry
		}

		converted := make([]Ring, len(rings))
		for i, coords := range rings {
			r, err := ringFromCoordinates(coords)
			if err != nil {
				return fmt.Errorf("ring %d: %w", i, err)
			}

			converted[i] = r
		}

		*g = PolygonGeometry(NewPolygon(converted[0], converted[1:]...))
	default:
		return fmt.Errorf("spatial: unsupported geometry type %q", raw.Type)
	}

	return nil
}

// MarshalJSON encodes g as a GeoJSON Point or Polygon.
func (g Geometry) MarshalJSON() ([]byte, error) {
	switch {
	case g.Point != nil:
		return json.Marshal(struct {
			Type        string     `json:"type"`
			Coordinates [2]float64 `json:"coordinates"`
		}{"Point", [2]float64{g.Point.X, g.Point.Y}})
	case g.Polygon != nil:
		rings := make([][][2]float64, 0, 1+len(g.Polygon.Holes))
		rings = append(rings, ringCoordinates(g.Polygon.Outer))

		for _, h := range g.Polygon.Holes {
			rings = append(rings, ringCoordinates(h))
		}

		return json.Marshal(struct {
			Type        string         `json:"type"`
			Coordinates [][][2]float64 `json:"coordinates"`
		}{"Polygon", rings})
	default:
		return []byte("null"), nil
	}
}

func ringFromCoordinates(coords [][]float64) (Ring, error) {
	points := make([]Point, len(coords))

	for i, c := range coords {
		if len(c) < 2 {
			return Ring{}, fmt.Errorf("spatial: position %d needs 2 coordinates, got %d", i, len(c))
		}

		points[i] = Point{X: c[0], Y: c[1]}
	}

	return Ring{Points: points}, nil
}

func ringCoordinates(r Ring) [][2]float64 {
	coords := make([][2]float64, len(r.Points))
	for i, p := range r.Points {
		coords[i] = [2]float64{p.X, p.Y}
	}

	return coords
}
