// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package address

import (
	"regexp"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// DefaultCountry is the registry key used when no validator is registered
// for a country.
const DefaultCountry = "default"

// Validator decides whether a house number is well formed.
type Validator interface {
	Validate(houseNumber string) bool
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(houseNumber string) bool

// Validate calls f.
func (f ValidatorFunc) Validate(houseNumber string) bool {
	return f(houseNumber)
}

// NonEmpty accepts any non-empty house number.
var NonEmpty = ValidatorFunc(func(hn string) bool {
	return hn != ""
})

// ukrainianHouseNumber is digits optionally followed by up to three letters,
// e.g. "12", "12А", "7Б".
var ukrainianHouseNumber = regexp.MustCompile(`(?i)^[0-9]+[А-ЯЇІЄ]{0,3}$`)

// Ukraine accepts plain numeric house numbers and numbers with a short
// Cyrillic letter suffix.
var Ukraine = ValidatorFunc(func(hn string) bool {
	return ukrainianHouseNumber.MatchString(norm.NFC.String(hn))
})

// Registry maps country names to house number validators.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]Validator
}

// NewRegistry returns a registry holding only the default validator.
func NewRegistry() *Registry {
	return &Registry{
		validators: map[string]Validator{
			DefaultCountry: NonEmpty,
		},
	}
}

// DefaultRegistry returns a registry with every built-in country validator.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("Ukraine", Ukraine)

	return r
}

// Register installs v for country, replacing any previous validator.
func (r *Registry) Register(country string, v Validator) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.validators[country] = v
}

// Lookup returns the validator for country, or the default one.
func (r *Registry) Lookup(country string) Validator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if v, ok := r.validators[country]; ok {
		return v
	}

	if v, ok := r.validators[DefaultCountry]; ok {
		return v
	}

	return NonEmpty
}

// Validate runs the country's validator. A validator that panics is
// reported as rejecting the house number.
func (r *Registry) Validate(country, houseNumber string) (valid bool) {
	v := r.Lookup(country)

	defer func() {
		if recover() != nil {
			valid = false
		}
	}()

	return v.Validate(houseNumber)
}
