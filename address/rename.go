// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package address

import "slices"

// NameFromHouseNumber returns the name to give an address point after its
// house number was edited. Only unnamed OTHER points are renamed.
func NameFromHouseNumber(categories []string, name, houseNumber string) (string, bool) {
	if name != "" || houseNumber == "" {
		return "", false
	}

	if !slices.Contains(categories, CategoryOther) {
		return "", false
	}

	return houseNumber, true
}
