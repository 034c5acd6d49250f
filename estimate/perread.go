// Package estimate implements the per-read genome-size formula (C8), the
// ±∞-tolerant robust quantile aggregator (C9), and the estimation facade
// (C10) shared by the AVA and TwoSet overlap pipelines.
package estimate

import "math"

// PerRead computes the per-read genome-size estimate (spec §4.8):
//
//	est(l, mu, T, o, theta) = +Inf                             if o == 0
//	                          l + (T/o) * (l + mu - 2*theta + 1) otherwise
//
// l is the read length, mu the average target read length, T the number of
// target reads, o the observed overlap count, theta the chain-score
// threshold. The formula's exact shape is a contract (spec §4.8); it is not
// re-derived here.
func PerRead(l int, mu float32, t int, o int, theta int) float32 {
	if o == 0 {
		return float32(math.Inf(1))
	}
	lf := float32(l)
	return lf + (float32(t)/float32(o))*(lf+mu-2*float32(theta)+1)
}
