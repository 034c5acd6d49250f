package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEstimateRanges(t *testing.T) {
	cases := []struct {
		in   float32
		want string
	}{
		{0, "0.00 bp"},
		{999.99, "999.99 bp"},
		{1_000, "1.00 kbp"},
		{1_234.56, "1.23 kbp"},
		{1_000_000, "1.00 Mbp"},
		{1_500_000, "1.50 Mbp"},
		{1_000_000_000, "1.00 Gbp"},
		{1_000_000_000_000, "1.00 Tbp"},
		{1_000_000_000_000_000, "1.00 Pbp"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, formatEstimate(c.in))
	}
}

func TestFormatEstimateInfinity(t *testing.T) {
	assert.Equal(t, "∞ bp", formatEstimate(float32(math.Inf(1))))
}
