package main

import (
	"fmt"
	"math"
)

// unitThresholds pairs a metric suffix with the power of 10 (in groups of
// three) at which it takes over, mirroring lrge/src/utils.rs::format_estimate.
var unitThresholds = []struct {
	suffix string
	power  int
}{
	{"bp", 0},
	{"kbp", 1},
	{"Mbp", 2},
	{"Gbp", 3},
	{"Tbp", 4},
	{"Pbp", 5},
}

// formatEstimate renders a genome-size estimate with a human-readable
// metric suffix for CLI display; the library API itself always returns a
// raw float32.
func formatEstimate(estimate float32) string {
	if math.IsInf(float64(estimate), 0) {
		return "∞ bp"
	}

	value := estimate
	suffix := "bp"
	for _, u := range unitThresholds {
		threshold := float32(math.Pow10(u.power * 3))
		if estimate >= threshold {
			value = estimate / threshold
			suffix = u.suffix
		} else {
			break
		}
	}
	return fmt.Sprintf("%.2f %s", value, suffix)
}
