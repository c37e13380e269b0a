// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package address

import (
	"errors"
	"fmt"

	"github.com/aph-tools/aph/spatial"
)

// CategoryOther is the category given to every composed address point.
const CategoryOther = "OTHER"

// DefaultCellResolution is the H3 resolution recorded for composed points.
const DefaultCellResolution = 13

var (
	// ErrNoParent is returned when Compose is called without a parent.
	ErrNoParent = errors.New("no parent feature selected")
	// ErrNoGeometry is returned when the parent has neither a point nor a polygon.
	ErrNoGeometry = errors.New("parent feature has no geometry")
	// ErrInvalidHouseNumber is returned by callers refusing to create a point
	// for a parent whose house number fails validation.
	ErrInvalidHouseNumber = errors.New("invalid house number")
)

// Address holds the address fields inherited from the parent feature.
type Address struct {
	StreetName  string `json:"street_name"`
	CityName    string `json:"city_name"`
	StateID     int64  `json:"state_id"`
	CountryID   int64  `json:"country_id"`
	HouseNumber string `json:"house_number,omitempty"`
}

// ParentSnapshot is the state of the selected parent feature.
type ParentSnapshot struct {
	Geometry         spatial.Geometry   `json:"geometry"`
	Address          Address            `json:"address"`
	LockRank         int                `json:"lock_rank"`
	UserRank         int                `json:"user_rank"`
	Country          string             `json:"country"`
	NavigationPoints []*NavigationPoint `json:"navigation_points,omitempty"`
}

// NavigationPoint returns the parent's first navigation point, if any.
func (p *ParentSnapshot) NavigationPoint() *NavigationPoint {
	if len(p.NavigationPoints) == 0 {
		return nil
	}

	return p.NavigationPoints[0]
}

// Policy holds the user's creation toggles.
type Policy struct {
	AddNavigationPoint     bool `json:"add_navigation_point"`
	InheritNavigationPoint bool `json:"inherit_navigation_point"`
	Residential            bool `json:"residential"`
}

// AddressPointRequest describes the point the editor should create.
type AddressPointRequest struct {
	Point            spatial.Point    `json:"point"`
	Position         spatial.LatLng   `json:"position"`
	Cell             string           `json:"h3_cell"`
	Categories       []string         `json:"categories"`
	Name             string           `json:"name,omitempty"`
	HouseNumber      string           `json:"house_number,omitempty"`
	StreetName       string           `json:"street_name"`
	EmptyStreet      bool             `json:"empty_street"`
	CityName         string           `json:"city_name"`
	EmptyCity        bool             `json:"empty_city"`
	StateID          int64            `json:"state_id"`
	CountryID        int64            `json:"country_id"`
	Residential      bool             `json:"residential"`
	LockRank         int              `json:"lock_rank"`
	NavigationPoint  *NavigationPoint `json:"navigation_point,omitempty"`
	HouseNumberValid bool             `json:"house_number_valid"`
	// Quality is the length of the scan line segment the point was taken
	// from; spatial.NoSegment when the fallback center was used, zero for
	// point parents.
	Quality float64 `json:"-"`
}

// Composer builds address point requests from parent snapshots.
type Composer struct {
	jitter         Jitter
	validators     *Registry
	cellResolution int
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithJitter replaces the default PositiveJitter.
func WithJitter(j Jitter) ComposerOption {
	return func(c *Composer) {
		c.jitter = j
	}
}

// WithValidators replaces the default validator registry.
func WithValidators(r *Registry) ComposerOption {
	return func(c *Composer) {
		c.validators = r
	}
}

// WithCellResolution sets the H3 resolution of the recorded cell.
func WithCellResolution(res int) ComposerOption {
	return func(c *Composer) {
		c.cellResolution = res
	}
}

// NewComposer returns a composer with positive jitter, the default validator
// registry and DefaultCellResolution, adjusted by opts.
func NewComposer(opts ...ComposerOption) *Composer {
	c := &Composer{
		jitter:         PositiveJitter{},
		validators:     DefaultRegistry(),
		cellResolution: DefaultCellResolution,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CanCreate reports whether the parent's house number is acceptable for its
// country.
func (c *Composer) CanCreate(parent *ParentSnapshot) bool {
	if parent == nil {
		return false
	}

	return c.validators.Validate(parent.Country, parent.Address.HouseNumber)
}

// Target returns the placement for a point created under geometry, before
// jitter, and the quality of the scan line segment it came from.
func Target(g spatial.Geometry) (spatial.Point, float64, error) {
	switch {
	case g.Polygon != nil:
		outer := g.Polygon.Outer
		p, quality := outer.InteriorPoint(outer.Centroid())

		return p, quality, nil
	case g.Point != nil:
		return *g.Point, 0, nil
	default:
		return spatial.Point{}, 0, ErrNoGeometry
	}
}

// Compose builds the request for a new address point under parent.
func (c *Composer) Compose(parent *ParentSnapshot, policy Policy) (*AddressPointRequest, error) {
	if parent == nil {
		return nil, ErrNoParent
	}

	target, quality, err := Target(parent.Geometry)
	if err != nil {
		return nil, err
	}

	target = target.Add(c.jitter.Offset())

	cell, err := target.Cell(c.cellResolution)
	if err != nil {
		return nil, fmt.Errorf("indexing target point: %w", err)
	}

	req := &AddressPointRequest{
		Point:            target,
		Position:         target.LatLng(),
		Cell:             cell.String(),
		Categories:       []string{CategoryOther},
		StreetName:       parent.Address.StreetName,
		CityName:         parent.Address.CityName,
		StateID:          parent.Address.StateID,
		CountryID:        parent.Address.CountryID,
		Residential:      policy.Residential,
		LockRank:         DeriveLockRank(parent.UserRank, parent.LockRank),
		HouseNumberValid: c.CanCreate(parent),
		Quality:          quality,
	}

	if hn := parent.Address.HouseNumber; hn != "" {
		req.HouseNumber = hn
		req.Name = hn
	}

	if policy.AddNavigationPoint {
		if inherited := parent.NavigationPoint(); policy.InheritNavigationPoint && inherited != nil {
			req.NavigationPoint = NewNavigationPoint(inherited.Point())
		} else {
			req.NavigationPoint = NewNavigationPoint(target)
		}
	}

	return req, nil
}
