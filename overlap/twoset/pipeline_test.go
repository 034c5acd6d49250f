package twoset

import (
	"bufio"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longread-lrge/lrge/minimap2"
)

// discardPaf returns a pafSink that throws its output away, for tests that
// only care about the tally/estimate side of handle.
func discardPaf() *pafSink {
	return &pafSink{w: bufio.NewWriter(io.Discard)}
}

type fakeAligner struct {
	mappings map[string][]minimap2.Mapping
	theta    int
}

func (f *fakeAligner) Map(seq []byte, queryName string) ([]minimap2.Mapping, error) {
	return f.mappings[queryName], nil
}

func (f *fakeAligner) ChainScoreThreshold() int {
	return f.theta
}

func mapping(target string, targetLen int) minimap2.Mapping {
	return minimap2.Mapping{
		Strand:      '+',
		QueryStart:  900, QueryEnd: 1000, QueryLen: 1000,
		TargetName: target, TargetStart: 0, TargetEnd: 100, TargetLen: targetLen,
	}
}

func TestHandleCountsDistinctTargetsOnly(t *testing.T) {
	a := &fakeAligner{
		theta: 40,
		mappings: map[string][]minimap2.Mapping{
			"q1": {mapping("t1", 1000), mapping("t1", 1000), mapping("t2", 1000)},
		},
	}
	opts := forwardOptions{index: a, paf: discardPaf(), targetAvgLen: 1000, kTarget: 10}
	r := &forwardResult{}

	require.NoError(t, r.handle(opts, readMsg{id: "q1", seq: make([]byte, 1000)}))

	assert.Equal(t, uint32(0), r.noMapping)
	require.Len(t, r.estimates, 1)
	assert.False(t, math.IsInf(float64(r.estimates[0]), 0))
}

func TestHandleNoMappingsIsInfinity(t *testing.T) {
	a := &fakeAligner{theta: 40, mappings: map[string][]minimap2.Mapping{}}
	opts := forwardOptions{index: a, paf: discardPaf(), targetAvgLen: 1000, kTarget: 10}
	r := &forwardResult{}

	require.NoError(t, r.handle(opts, readMsg{id: "q1", seq: make([]byte, 1000)}))

	assert.Equal(t, uint32(1), r.noMapping)
	require.Len(t, r.estimates, 1)
	assert.True(t, math.IsInf(float64(r.estimates[0]), 0))
}

func TestHandleFiltersInternalMatchesWhenEnabled(t *testing.T) {
	sandwiched := minimap2.Mapping{
		Strand:      '+',
		QueryStart:  400, QueryEnd: 600, QueryLen: 1000,
		TargetName: "t1", TargetStart: 300, TargetEnd: 500, TargetLen: 1000,
	}
	a := &fakeAligner{
		theta:    40,
		mappings: map[string][]minimap2.Mapping{"q1": {sandwiched}},
	}
	opts := forwardOptions{
		index: a, paf: discardPaf(), targetAvgLen: 1000, kTarget: 10,
		removeInternal: true, maxOverhangRatio: 0.1,
	}
	r := &forwardResult{}

	require.NoError(t, r.handle(opts, readMsg{id: "q1", seq: make([]byte, 1000)}))

	assert.Equal(t, uint32(1), r.noMapping)
	require.Len(t, r.estimates, 1)
	assert.True(t, math.IsInf(float64(r.estimates[0]), 0))
}

func TestHandleKeepsInternalMatchesWhenDisabled(t *testing.T) {
	sandwiched := minimap2.Mapping{
		Strand:      '+',
		QueryStart:  400, QueryEnd: 600, QueryLen: 1000,
		TargetName: "t1", TargetStart: 300, TargetEnd: 500, TargetLen: 1000,
	}
	a := &fakeAligner{
		theta:    40,
		mappings: map[string][]minimap2.Mapping{"q1": {sandwiched}},
	}
	opts := forwardOptions{index: a, paf: discardPaf(), targetAvgLen: 1000, kTarget: 10}
	r := &forwardResult{}

	require.NoError(t, r.handle(opts, readMsg{id: "q1", seq: make([]byte, 1000)}))

	assert.Equal(t, uint32(0), r.noMapping)
	require.Len(t, r.estimates, 1)
	assert.False(t, math.IsInf(float64(r.estimates[0]), 0))
}
