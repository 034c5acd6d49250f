package estimate

import (
	"math"
	"sort"
)

// Aggregate sorts data ascending and computes its median plus, when
// requested, a lower and upper quantile (spec §4.9, C9). All three return
// values are nil exactly when data is empty. qLower must be in (0, 0.5) and
// qUpper in (0.5, 1) when provided; violating this is a programmer error
// and panics, matching spec §4.9 ("q_l ∉ (0, 0.5) ... is a programmer
// error").
func Aggregate(data []float32, qLower, qUpper *float64) (lower, median, upper *float32) {
	if len(data) == 0 {
		return nil, nil, nil
	}
	if qLower != nil && (*qLower <= 0 || *qLower >= 0.5) {
		panic("estimate: lower quantile must be in (0, 0.5)")
	}
	if qUpper != nil && (*qUpper <= 0.5 || *qUpper >= 1) {
		panic("estimate: upper quantile must be in (0.5, 1)")
	}

	sorted := append([]float32(nil), data...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	m := quantileSorted(sorted, 0.5)
	median = &m
	if qLower != nil {
		l := quantileSorted(sorted, *qLower)
		lower = &l
	}
	if qUpper != nil {
		u := quantileSorted(sorted, *qUpper)
		upper = &u
	}
	return lower, median, upper
}

// quantileSorted computes the p-quantile of an ascending-sorted slice using
// classical linear interpolation indexed by p*(n-1) (spec §4.9). When the
// interpolation index is integral or has no upper neighbor (the last
// element), that element is returned exactly, and equal neighbors (e.g. two
// +Inf entries) return their shared value; neither an Inf-Inf subtraction
// nor a 0*Inf product is evaluated, so +Inf entries never produce NaN.
func quantileSorted(sorted []float32, p float64) float32 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}

	idx := p * float64(n-1)
	lowIdx := int(math.Floor(idx))
	if lowIdx+1 >= n {
		return sorted[lowIdx]
	}

	lowVal, highVal := sorted[lowIdx], sorted[lowIdx+1]
	if lowVal == highVal {
		return lowVal
	}

	frac := idx - float64(lowIdx)
	if frac == 0 {
		return lowVal
	}
	return float32(float64(lowVal) + frac*(float64(highVal)-float64(lowVal)))
}
