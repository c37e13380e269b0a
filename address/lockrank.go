// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package address

// DeriveLockRank returns the lock rank for a point created under a parent
// feature. The result never exceeds the user's rank nor the parent's rank,
// except that any user with rank 1 or more may still create a point locked
// at 1 under a more locked parent.
func DeriveLockRank(userRank, parentLockRank int) int {
	switch {
	case userRank >= parentLockRank:
		return max(parentLockRank, 0)
	case userRank >= 1:
		return 1
	default:
		return 0
	}
}
