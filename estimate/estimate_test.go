package estimate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inf32() float32 { return float32(math.Inf(1)) }
func ninf32() float32 { return float32(math.Inf(-1)) }

func TestPerReadNoOverlapsIsInfinity(t *testing.T) {
	got := PerRead(1000, 5000, 99, 0, 100)
	assert.True(t, math.IsInf(float64(got), 1))
}

func TestPerReadFormula(t *testing.T) {
	// est = l + (T/o) * (l + mu - 2*theta + 1)
	got := PerRead(1000, 5000, 99, 10, 100)
	want := float32(1000) + (float32(99)/float32(10))*(1000+5000-200+1)
	assert.InDelta(t, want, got, 1e-3)
}

// TestMedianOddLength pins spec §8 concrete scenario 3 ("median of [1, 3,
// 5, 7, 9] = 5"), the same literal the original's estimate.rs::median tests
// assert directly rather than by recomputing the formula.
func TestMedianOddLength(t *testing.T) {
	_, median, _ := Aggregate([]float32{1, 3, 5, 7, 9}, nil, nil)
	require.NotNil(t, median)
	assert.Equal(t, float32(5), *median)
}

// TestMedianEvenLength pins spec §8 concrete scenario 3's second half
// ("median of [1, 3, 5, 7] = 4").
func TestMedianEvenLength(t *testing.T) {
	_, median, _ := Aggregate([]float32{1, 3, 5, 7}, nil, nil)
	require.NotNil(t, median)
	assert.Equal(t, float32(4), *median)
}

func TestMedianWithMixedInfinities(t *testing.T) {
	_, median, _ := Aggregate([]float32{ninf32(), 1, 2, inf32()}, nil, nil)
	require.NotNil(t, median)
	assert.InDelta(t, float32(1.5), *median, 1e-6)
}

func TestMedianAllInfinite(t *testing.T) {
	_, median, _ := Aggregate([]float32{inf32(), inf32()}, nil, nil)
	require.NotNil(t, median)
	assert.True(t, math.IsInf(float64(*median), 1))
}

func TestUpperQuantileOfMostlyInfiniteVector(t *testing.T) {
	data := []float32{1, 2, 3, 4, 5, 6, inf32(), inf32(), inf32(), inf32()}
	q := 0.65
	_, _, upper := Aggregate(data, nil, &q)
	require.NotNil(t, upper)
	assert.True(t, math.IsInf(float64(*upper), 1))
}

func TestAggregateEmptyReturnsAllNil(t *testing.T) {
	lower, median, upper := Aggregate(nil, nil, nil)
	assert.Nil(t, lower)
	assert.Nil(t, median)
	assert.Nil(t, upper)
}

func TestAggregateOnlyRequestedSidesPresent(t *testing.T) {
	qLower := 0.15
	lower, median, upper := Aggregate([]float32{1, 2, 3, 4, 5}, &qLower, nil)
	assert.NotNil(t, lower)
	assert.NotNil(t, median)
	assert.Nil(t, upper)
}

func TestAggregatePanicsOnInvalidLowerQuantile(t *testing.T) {
	bad := 0.5
	assert.Panics(t, func() {
		Aggregate([]float32{1, 2, 3}, &bad, nil)
	})
}

func TestAggregatePanicsOnInvalidUpperQuantile(t *testing.T) {
	bad := 0.5
	assert.Panics(t, func() {
		Aggregate([]float32{1, 2, 3}, nil, &bad)
	})
}

func TestFromVectorFiniteOnlyDropsInfinities(t *testing.T) {
	res := FromVector([]float32{1, 2, inf32()}, 1, true, nil, nil)
	require.NotNil(t, res.Estimate)
	assert.False(t, math.IsInf(float64(*res.Estimate), 0))
	assert.Equal(t, uint32(1), res.NoMappingCount)
}

func TestFromVectorRetainsInfinitiesWhenNotFiniteOnly(t *testing.T) {
	res := FromVector([]float32{inf32(), inf32(), inf32()}, 3, false, nil, nil)
	require.NotNil(t, res.Estimate)
	assert.True(t, math.IsInf(float64(*res.Estimate), 1))
}

func TestFromVectorEmptyAfterFilterHasNoEstimate(t *testing.T) {
	res := FromVector([]float32{inf32(), inf32()}, 2, true, nil, nil)
	assert.Nil(t, res.Estimate)
}
