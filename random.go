package lrge

import (
	"math/rand"
)

// UniqueRandomSet draws k unique indices from [0, n) uniformly without
// replacement, using Floyd's algorithm for sampling. If seed is non-nil the
// draw is reproducible bit-for-bit for the same (k, n, *seed); otherwise an
// OS-entropy seed is drawn once. The returned source is always an explicitly
// constructed *rand.Rand, never the package-level global (spec §9:
// "do not rely on a thread-local global").
//
// UniqueRandomSet panics if k > n, which the caller must never trigger: the
// subsampler always clamps k to n before calling this function.
func UniqueRandomSet(k int, n uint32, seed *uint64) []uint32 {
	if uint32(k) > n {
		panic("lrge: cannot draw more unique indices than the population size")
	}

	var src rand.Source
	if seed != nil {
		src = rand.NewSource(int64(*seed))
	} else {
		src = rand.NewSource(entropySeed())
	}
	rng := rand.New(src)

	// Floyd's algorithm: builds a uniformly-random k-subset of [0, n) in
	// O(k) time using only O(k) extra space, with no upfront allocation of
	// the full population.
	selected := make(map[uint32]struct{}, k)
	result := make([]uint32, 0, k)
	for j := n - uint32(k); j < n; j++ {
		t := uint32(rng.Int63n(int64(j) + 1))
		if _, ok := selected[t]; !ok {
			selected[t] = struct{}{}
			result = append(result, t)
		} else {
			selected[j] = struct{}{}
			result = append(result, j)
		}
	}
	return result
}
