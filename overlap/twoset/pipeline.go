package twoset

import (
	"bufio"
	"sync"

	"github.com/longread-lrge/lrge/estimate"
	"github.com/longread-lrge/lrge/lrgeerr"
	"github.com/longread-lrge/lrge/minimap2"
)

// channelCapacity bounds the producer/consumer channel (spec §5: "capacity
// ... 10,000 for TwoSet").
const channelCapacity = 10000

// aligner is the subset of *minimap2.Index this package depends on; see
// ava.aligner for the rationale (testing without cgo).
type aligner interface {
	Map(seq []byte, queryName string) ([]minimap2.Mapping, error)
	ChainScoreThreshold() int
}

type readMsg struct {
	id  string
	seq []byte
}

// pafSink is a mutex-guarded PAF writer shared across a worker pool,
// mirroring overlap/ava's pafWriter/pafMu pair (spec §4.6 step 2, reused by
// both the forward query pipeline and the inverse target pipeline per spec
// §4.7).
type pafSink struct {
	mu sync.Mutex
	w  *bufio.Writer
}

func (s *pafSink) write(m minimap2.Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := m.WriteTo(s.w); err != nil {
		return lrgeerr.E(lrgeerr.PafWrite, "writing PAF record for read "+m.QueryName, err)
	}
	return nil
}

// forwardOptions configures one forward (query-against-target) pass.
type forwardOptions struct {
	index            aligner
	paf              *pafSink
	targetAvgLen     float32
	kTarget          int
	removeInternal   bool
	maxOverhangRatio float64
}

// forwardResult accumulates the per-read estimate vector and no-mapping
// count across the worker pool (spec §4.7 steps 1-2).
type forwardResult struct {
	mu        sync.Mutex
	estimates []float32
	noMapping uint32
}

// handle computes one query read's distinct-target overlap set and its
// per-read estimate (spec §4.7: "collect the distinct target identifiers
// among its mappings (a set, not a multiset)").
func (r *forwardResult) handle(opts forwardOptions, msg readMsg) error {
	mappings, err := opts.index.Map(msg.seq, msg.id)
	if err != nil {
		return err
	}
	for _, m := range mappings {
		if err := opts.paf.write(m); err != nil {
			return err
		}
	}
	if opts.removeInternal {
		mappings = filterInternalMatches(mappings, opts.maxOverhangRatio)
	}

	distinct := make(map[string]struct{}, len(mappings))
	for _, m := range mappings {
		distinct[m.TargetName] = struct{}{}
	}
	o := len(distinct)
	theta := opts.index.ChainScoreThreshold()
	est := estimate.PerRead(len(msg.seq), opts.targetAvgLen, opts.kTarget, o, theta)

	r.mu.Lock()
	if o == 0 {
		r.noMapping++
	}
	r.estimates = append(r.estimates, est)
	r.mu.Unlock()
	return nil
}
