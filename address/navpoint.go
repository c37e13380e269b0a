// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package address

import (
	"encoding/json"

	"github.com/aph-tools/aph/spatial"
)

// NavigationPoint marks where routes enter and exit a feature. Values are
// immutable; use With to derive a modified copy.
type NavigationPoint struct {
	point   spatial.Point
	entry   bool
	exit    bool
	primary bool
	name    string
}

// NavigationPointUpdate lists the fields With may override. Nil fields keep
// the source value.
type NavigationPointUpdate struct {
	Point *spatial.Point
}

// NewNavigationPoint returns a primary, unnamed entry and exit point at p.
func NewNavigationPoint(p spatial.Point) *NavigationPoint {
	return &NavigationPoint{
		point:   p,
		entry:   true,
		exit:    true,
		primary: true,
	}
}

// With returns a new navigation point copying np with u applied.
func (np *NavigationPoint) With(u NavigationPointUpdate) *NavigationPoint {
	derived := *np
	if u.Point != nil {
		derived.point = *u.Point
	}

	return &derived
}

// Clone returns an equal but distinct navigation point.
func (np *NavigationPoint) Clone() *NavigationPoint {
	return np.With(NavigationPointUpdate{})
}

func (np *NavigationPoint) Point() spatial.Point { return np.point }
func (np *NavigationPoint) Entry() bool          { return np.entry }
func (np *NavigationPoint) Exit() bool           { return np.exit }
func (np *NavigationPoint) Primary() bool        { return np.primary }
func (np *NavigationPoint) Name() string         { return np.name }

type navigationPointJSON struct {
	Point   spatial.Point `json:"point"`
	Entry   bool          `json:"entry"`
	Exit    bool          `json:"exit"`
	Primary bool          `json:"primary"`
	Name    string        `json:"name"`
}

// MarshalJSON encodes every field of np.
func (np *NavigationPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(navigationPointJSON{
		Point:   np.point,
		Entry:   np.entry,
		Exit:    np.exit,
		Primary: np.primary,
		Name:    np.name,
	})
}

// UnmarshalJSON decodes a navigation point. Missing flags default to true,
// as for NewNavigationPoint.
func (np *NavigationPoint) UnmarshalJSON(data []byte) error {
	v := navigationPointJSON{Entry: true, Exit: true, Primary: true}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*np = NavigationPoint{
		point:   v.Point,
		entry:   v.Entry,
		exit:    v.Exit,
		primary: v.Primary,
		name:    v.Name,
	}

	return nil
}
