package ava

import (
	"bufio"
	"math"
	"sync"

	"github.com/longread-lrge/lrge/estimate"
	"github.com/longread-lrge/lrge/lrgeerr"
	"github.com/longread-lrge/lrge/minimap2"
	"github.com/longread-lrge/lrge/subsample"
)

// aligner is the subset of *minimap2.Index the pipeline depends on (spec
// §4.4: "map(seq, query_name) ... thread-safe for concurrent map calls").
// Factoring it out as an interface lets the pipeline's tally/seen-pair
// logic be exercised with a fake aligner in tests, independent of the cgo
// binding.
type aligner interface {
	Map(seq []byte, queryName string) ([]minimap2.Mapping, error)
	ChainScoreThreshold() int
}

// pipeline holds the shared, mutex-guarded state one all-vs-all pass over a
// read set accumulates (spec §4.6, §5): the read-length map populated by
// the producer, the PAF writer, and the overlap tally plus seen-pair set
// populated by the worker pool. Locks are always acquired tally -> paf ->
// seen-pair, never in the opposite order, to prevent deadlock (spec §5).
type pipeline struct {
	index     aligner
	pafWriter *bufio.Writer
	pafMu     sync.Mutex

	mu          sync.Mutex // guards readLengths
	readLengths map[string]int

	tallyMu sync.Mutex
	tally   map[string]int

	seenMu    sync.Mutex
	seenPairs map[[2]string]struct{}
}

// handle aligns one read against the shared index and folds the result
// into the tally, seen-pair set, and PAF file (spec §4.6 step 2).
func (p *pipeline) handle(msg readMsg) error {
	mappings, err := p.index.Map(msg.seq, msg.id)
	if err != nil {
		return lrgeerr.WithIdent(lrgeerr.Map, "mapping read", msg.id, err)
	}

	p.tallyMu.Lock()
	defer p.tallyMu.Unlock()

	if len(mappings) == 0 {
		p.ensureZero(msg.id)
		return nil
	}

	p.pafMu.Lock()
	for _, m := range mappings {
		if err := m.WriteTo(p.pafWriter); err != nil {
			p.pafMu.Unlock()
			return lrgeerr.E(lrgeerr.PafWrite, "writing PAF record for read "+msg.id, err)
		}
	}
	p.pafMu.Unlock()

	p.seenMu.Lock()
	for _, m := range mappings {
		if m.TargetName == msg.id {
			// Self-mapping: ensure a zero entry exists, but keep scanning
			// the rest of this read's mappings (spec §4.6 step 2).
			p.ensureZero(msg.id)
			continue
		}

		a, b := msg.id, m.TargetName
		if b < a {
			a, b = b, a
		}
		pair := [2]string{a, b}
		if _, seen := p.seenPairs[pair]; seen {
			continue
		}
		p.seenPairs[pair] = struct{}{}
		p.tally[a]++
		p.tally[b]++
	}
	p.seenMu.Unlock()

	return nil
}

// ensureZero inserts a zero tally entry for id if absent. Callers must hold
// tallyMu.
func (p *pipeline) ensureZero(id string) {
	if _, ok := p.tally[id]; !ok {
		p.tally[id] = 0
	}
}

// estimates computes the final per-read estimate vector from the
// accumulated tally, using avg_target_len = total bases / (k-1) and
// n_target_reads = k-1 (spec §4.6 step 3: "every read's implicit target set
// is all others").
func (p *pipeline) estimates(sample *subsample.Result) ([]float32, uint32, error) {
	k := sample.K
	if k <= 1 {
		return nil, 0, lrgeerr.E(lrgeerr.TooFewReads, "need at least 2 reads to compute all-vs-all estimates", nil)
	}

	avgTargetLen := float32(sample.TotalBases) / float32(k-1)
	nTargetReads := k - 1
	theta := p.index.ChainScoreThreshold()

	out := make([]float32, 0, len(p.tally))
	var noMapping uint32
	for id, n := range p.tally {
		if n == 0 {
			noMapping++
			out = append(out, float32(math.Inf(1)))
			continue
		}
		length := p.readLengths[id]
		out = append(out, estimate.PerRead(length, avgTargetLen, nTargetReads, n, theta))
	}
	return out, noMapping, nil
}
