package twoset

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"

	"github.com/grailbio/base/errors"

	"github.com/longread-lrge/lrge/encoding/fastx"
	"github.com/longread-lrge/lrge/estimate"
	"github.com/longread-lrge/lrge/lrgeerr"
	"github.com/longread-lrge/lrge/minimap2"
	"github.com/longread-lrge/lrge/subsample"
)

// inverseTally accumulates, per query identifier, the set of distinct
// target reads it overlaps (spec §4.7 step 3). Unlike the forward
// pipeline, the per-read identity driving iteration is the *target* set;
// the tally is keyed by query id instead.
type inverseTally struct {
	mu   sync.Mutex
	seen map[string]map[string]struct{} // query id -> set of target ids overlapped
}

func (t *inverseTally) record(queryID, targetID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	set, ok := t.seen[queryID]
	if !ok {
		set = make(map[string]struct{})
		t.seen[queryID] = set
	}
	set[targetID] = struct{}{}
}

func (t *inverseTally) count(queryID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen[queryID])
}

// runInverse builds the index over the query file and streams the target
// file through it, accumulating per-query overlap counts (spec §4.7 step
// 3). Query identifiers are enumerated directly from the index metadata at
// startup, so non-overlapping queries still appear with a zero tally. This
// trades index size for throughput when the target set is larger than the
// query set, and must produce results statistically equivalent to the
// forward direction.
func (s *Strategy) runInverse(sample *subsample.TwoSetResult) error {
	index, err := minimap2.Build(sample.QueryPath, s.threads, minimap2.AvaOnt, true)
	if err != nil {
		return err
	}
	defer index.Close()

	queryLengths := index.SequenceLengths()
	tally := &inverseTally{seen: make(map[string]map[string]struct{}, len(queryLengths))}
	for id := range queryLengths {
		tally.seen[id] = make(map[string]struct{})
	}

	pafPath := filepath.Join(s.tmpdir, "overlaps.paf")
	pafFile, err := os.Create(pafPath)
	if err != nil {
		return lrgeerr.E(lrgeerr.IO, "creating "+pafPath, err)
	}
	defer pafFile.Close()
	pafWriter := bufio.NewWriter(pafFile)
	defer pafWriter.Flush()
	paf := &pafSink{w: pafWriter}

	if err := streamTargetsThroughInverseIndex(sample.TargetPath, index, tally, paf, s.removeInternal, s.maxOverhangRatio, s.threads); err != nil {
		return err
	}

	targetAvgLen := float32(sample.TargetBases) / float32(sample.KTarget)
	theta := index.ChainScoreThreshold()

	estimates := make([]float32, 0, len(queryLengths))
	var noMapping uint32
	for id, length := range queryLengths {
		o := tally.count(id)
		if o == 0 {
			noMapping++
		}
		estimates = append(estimates, estimate.PerRead(length, targetAvgLen, sample.KTarget, o, theta))
	}

	s.estimates = estimates
	s.noMapping = noMapping
	return nil
}

// streamTargetsThroughInverseIndex runs the bounded producer/worker-pool
// pipeline over the target file, mapping each target read against the
// query-built index and recording every distinct query id it overlaps.
func streamTargetsThroughInverseIndex(targetPath string, index aligner, tally *inverseTally, paf *pafSink, removeInternal bool, maxOverhangRatio float64, threads int) error {
	f, err := os.Open(targetPath)
	if err != nil {
		return lrgeerr.E(lrgeerr.IO, "opening target scratch file", err)
	}
	defer f.Close()

	ch := make(chan readMsg, channelCapacity)
	var producerErr error
	var producerWG sync.WaitGroup
	producerWG.Add(1)
	go func() {
		defer producerWG.Done()
		defer close(ch)
		producerErr = produceQuery(f, ch) // same scan-and-send shape regardless of which set is streamed
	}()

	var wg sync.WaitGroup
	var errOnce errors.Once
	if threads < 1 {
		threads = 1
	}
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for msg := range ch {
				mappings, err := index.Map(msg.seq, msg.id)
				if err != nil {
					errOnce.Set(err)
					return
				}
				for _, m := range mappings {
					if err := paf.write(m); err != nil {
						errOnce.Set(err)
						return
					}
				}
				if removeInternal {
					mappings = filterInternalMatches(mappings, maxOverhangRatio)
				}
				for _, m := range mappings {
					tally.record(m.TargetName, msg.id)
				}
			}
		}()
	}
	wg.Wait()
	producerWG.Wait()

	if producerErr != nil {
		return producerErr
	}
	return errOnce.Err()
}
