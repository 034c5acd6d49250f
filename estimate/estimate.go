package estimate

import "math"

// Default aggregation quantiles (spec §6, configuration surface).
const (
	DefaultLowerQuantile = 0.15
	DefaultUpperQuantile = 0.65
)

// Result is the output of the estimation facade (spec §4.10, C10).
type Result struct {
	Lower          *float32
	Estimate       *float32
	Upper          *float32
	NoMappingCount uint32
}

// Estimator is implemented by both overlap strategies (ava.Strategy and
// twoset.Strategy): each accumulates a per-read estimate vector over the
// course of its pipeline and exposes it through this single entry point
// (spec §4.10: "exposes one entry point").
type Estimator interface {
	Estimate(finiteOnly bool, lowerQuantile, upperQuantile *float64) (Result, error)
}

// FromVector builds a Result from a raw per-read estimate vector and a
// no-mapping count, applying the finite-only filter before aggregation
// (spec §4.10: "if finite_only is true, ±∞ entries are dropped before
// aggregation; otherwise they are retained").
func FromVector(estimates []float32, noMappingCount uint32, finiteOnly bool, lowerQuantile, upperQuantile *float64) Result {
	vec := estimates
	if finiteOnly {
		filtered := make([]float32, 0, len(estimates))
		for _, v := range estimates {
			if !math.IsInf(float64(v), 0) {
				filtered = append(filtered, v)
			}
		}
		vec = filtered
	}

	lower, median, upper := Aggregate(vec, lowerQuantile, upperQuantile)
	return Result{
		Lower:          lower,
		Estimate:       median,
		Upper:          upper,
		NoMappingCount: noMappingCount,
	}
}
