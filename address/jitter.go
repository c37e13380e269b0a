// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package address

import (
	"math/rand/v2"
)

// Jitter offsets a computed placement so that points stacked on the same
// parent stay distinguishable in the editor.
type Jitter interface {
	Offset() (dx, dy float64)
}

// RandFunc returns a uniform value in [0, 1).
type RandFunc func() float64

// PositiveJitter moves points between 1 and 3 meters up and to the right.
// A nil Rand uses math/rand/v2.
type PositiveJitter struct {
	Rand RandFunc
}

// Offset implements Jitter.
func (j PositiveJitter) Offset() (float64, float64) {
	r := j.Rand
	if r == nil {
		r = rand.Float64
	}

	return r()*2 + 1, r()*2 + 1
}

// SymmetricJitter moves points between 1 and 3 meters along each axis in a
// random direction.
type SymmetricJitter struct {
	Rand RandFunc
}

// Offset implements Jitter.
func (j SymmetricJitter) Offset() (float64, float64) {
	r := j.Rand
	if r == nil {
		r = rand.Float64
	}

	sign := func() float64 {
		if r() < 0.5 {
			return -1
		}

		return 1
	}

	return sign() * (r()*2 + 1), sign() * (r()*2 + 1)
}

// FixedJitter always returns the same offset.
type FixedJitter struct {
	DX, DY float64
}

// Offset implements Jitter.
func (j FixedJitter) Offset() (float64, float64) {
	return j.DX, j.DY
}

// JitterByName returns the jitter strategy for name: "positive" (default),
// "symmetric" or "none".
func JitterByName(name string) (Jitter, bool) {
	switch name {
	case "", "positive":
		return PositiveJitter{}, true
	case "symmetric":
		return SymmetricJitter{}, true
	case "none":
		return FixedJitter{}, true
	default:
		return nil, false
	}
}
