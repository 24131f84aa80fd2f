package util

import "math/rand"

// SampleN returns n distinct elements of items chosen uniformly at random.
// When n >= len(items) a shuffled copy of all items is returned. items is
// never modified.
func SampleN[T any](r *rand.Rand, items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	pool := make([]T, len(items))
	copy(pool, items)
	if n > len(pool) {
		n = len(pool)
	}
	// partial Fisher-Yates: the first n slots end up a uniform sample
	for i := 0; i < n; i++ {
		j := i + r.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
