package storage

import "math/rand"

// generateRandomUint32Values returns a set of n distinct pseudo-random
// uint32 values, represented as a map for O(1) membership checks during
// test setup.
func generateRandomUint32Values(n int) map[uint32]bool {
	values := make(map[uint32]bool, n)
	for len(values) < n {
		values[rand.Uint32()] = true
	}
	return values
}
