// Copyright 2025 The APH Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"

	"github.com/uber/h3-go/v4"
)

const (
	earthRadius    = 6371e3    // meters
	mercatorRadius = 6378137.0 // meters, EPSG:3857 sphere
)

// Point is a planar coordinate pair in the editor's projection (spherical
// Web Mercator, meters).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LatLng is a WGS84 position in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns the WKT form of the Point. Coordinates keep full precision
// so that Scan reads back the same point.
func (p Point) String() string {
	return "POINT(" + strconv.FormatFloat(p.X, 'f', -1, 64) + " " + strconv.FormatFloat(p.Y, 'f', -1, 64) + ")"
}

// Value implements the driver.Valuer interface for database serialization.
func (p Point) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (p *Point) Scan(value interface{}) error {
	if value == nil {
		p.X, p.Y = 0, 0

		return nil
	}

	switch v := value.(type) {
	case []byte:
		return p.scanText(string(v))
	case string:
		return p.scanText(v)
	case map[string]interface{}:
		x, okX := v["x"].(float64)
		y, okY := v["y"].(float64)

		if !okX || !okY {
			return fmt.Errorf("spatial: invalid map for point: expected 'x' and 'y' float64 fields, got %+v", v)
		}

		p.X = x
		p.Y = y

		return nil
	default:
		return fmt.Errorf("spatial: unsupported type for Point scan: %T", value)
	}
}

func (p *Point) scanText(s string) error {
	// DuckDB renders "POINT (x y)", String renders "POINT(x y)"
	if _, err := fmt.Sscanf(s, "POINT (%f %f)", &p.X, &p.Y); err == nil {
		return nil
	}

	_, err := fmt.Sscanf(s, "POINT(%f %f)", &p.X, &p.Y)

	return err
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// LatLng converts the projected point back to WGS84 degrees.
func (p Point) LatLng() LatLng {
	return LatLng{
		Lat: (2*math.Atan(math.Exp(p.Y/mercatorRadius)) - math.Pi/2) * 180 / math.Pi,
		Lng: p.X / mercatorRadius * 180 / math.Pi,
	}
}

// Cell returns the H3 cell containing p at the given resolution.
func (p Point) Cell(res int) (h3.Cell, error) {
	ll := p.LatLng()

	cell, err := h3.LatLngToCell(h3.NewLatLng(ll.Lat, ll.Lng), res)
	if err != nil {
		return 0, fmt.Errorf("error converting to h3 cell at res %d: %w", res, err)
	}

	return cell, nil
}

// HaversineDistance calculates the distance between two positions on Earth in meters.
func (ll LatLng) HaversineDistance(other LatLng) float64 {
	lat1 := ll.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - ll.Lat) * math.Pi / 180
	dLng := (other.Lng - ll.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// GroundDistance returns the distance in meters on the ground between p and q.
func (p Point) GroundDistance(q Point) float64 {
	return p.LatLng().HaversineDistance(q.LatLng())
}
