// Package twoset implements the two-set overlap pipeline (spec §4.7,
// component C7): a smaller query read set is mapped against a larger
// target read set, and a genome-size estimate is produced for each query
// read from the number of distinct target reads it overlaps.
package twoset

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"

	"github.com/longread-lrge/lrge/encoding/fastx"
	"github.com/longread-lrge/lrge/estimate"
	"github.com/longread-lrge/lrge/lrgeerr"
	"github.com/longread-lrge/lrge/minimap2"
	"github.com/longread-lrge/lrge/subsample"
)

// Strategy runs the two-set overlap pipeline over a single input file,
// internally subsampled into disjoint target and query sets. Construct one
// with a Builder.
type Strategy struct {
	input   string
	kTarget int
	kQuery  int
	tmpdir  string
	threads int
	seed    *uint64

	removeInternal   bool
	maxOverhangRatio float64
	useMinRef        bool

	estimates []float32
	noMapping uint32
	ran       bool
}

// Estimate runs the pipeline if it has not already run, then aggregates
// the accumulated per-read estimate vector (spec §4.10, C10).
func (s *Strategy) Estimate(finiteOnly bool, lowerQuantile, upperQuantile *float64) (estimate.Result, error) {
	if !s.ran {
		if err := s.run(); err != nil {
			return estimate.Result{}, err
		}
		s.ran = true
	}
	return estimate.FromVector(s.estimates, s.noMapping, finiteOnly, lowerQuantile, upperQuantile), nil
}

func (s *Strategy) run() error {
	sample, err := subsample.TwoSet(s.input, s.kTarget, s.kQuery, s.seed, s.tmpdir)
	if err != nil {
		return err
	}
	s.kTarget, s.kQuery = sample.KTarget, sample.KQuery

	if s.useMinRef && sample.TargetBases > sample.QueryBases {
		log.Printf("twoset: target set (%d bases) exceeds query set (%d bases); running inverse pipeline", sample.TargetBases, sample.QueryBases)
		return s.runInverse(sample)
	}
	return s.runForward(sample)
}

func (s *Strategy) runForward(sample *subsample.TwoSetResult) error {
	log.Printf("twoset: building index over %s (%d target reads)", sample.TargetPath, sample.KTarget)
	index, err := minimap2.Build(sample.TargetPath, s.threads, minimap2.AvaOnt, true)
	if err != nil {
		return err
	}
	defer index.Close()

	pafPath := filepath.Join(s.tmpdir, "overlaps.paf")
	pafFile, err := os.Create(pafPath)
	if err != nil {
		return lrgeerr.E(lrgeerr.IO, "creating "+pafPath, err)
	}
	defer pafFile.Close()
	pafWriter := bufio.NewWriter(pafFile)
	defer pafWriter.Flush()

	opts := forwardOptions{
		index:            index,
		paf:              &pafSink{w: pafWriter},
		targetAvgLen:     float32(sample.TargetBases) / float32(sample.KTarget),
		kTarget:          sample.KTarget,
		removeInternal:   s.removeInternal,
		maxOverhangRatio: s.maxOverhangRatio,
	}

	estimates, noMapping, err := runQueryPipeline(sample.QueryPath, opts, s.threads)
	if err != nil {
		return err
	}
	s.estimates = estimates
	s.noMapping = noMapping
	return nil
}

// runQueryPipeline streams the query file through the bounded
// producer/worker-pool pipeline of spec §4.6/§4.7 against opts.index.
func runQueryPipeline(queryPath string, opts forwardOptions, threads int) ([]float32, uint32, error) {
	f, err := os.Open(queryPath)
	if err != nil {
		return nil, 0, lrgeerr.E(lrgeerr.IO, "opening query scratch file", err)
	}
	defer f.Close()

	ch := make(chan readMsg, channelCapacity)
	var producerErr error
	var producerWG sync.WaitGroup
	producerWG.Add(1)
	go func() {
		defer producerWG.Done()
		defer close(ch)
		producerErr = produceQuery(f, ch)
	}()

	result := &forwardResult{}
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
				if err := result.handle(opts, msg); err != nil {
					errOnce.Set(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	producerWG.Wait()

	if producerErr != nil {
		return nil, 0, producerErr
	}
	if err := errOnce.Err(); err != nil {
		return nil, 0, err
	}
	return result.estimates, result.noMapping, nil
}

func produceQuery(f *os.File, ch chan<- readMsg) error {
	rd := fastx.NewReader(f)
	var rec fastx.Record
	for rd.Scan(&rec) {
		seq := append([]byte(nil), rec.Seq...)
		ch <- readMsg{id: rec.ID, seq: seq}
	}
	if err := rd.Err(); err != nil {
		return lrgeerr.E(lrgeerr.FastqParse, "scanning query scratch file", err)
	}
	return nil
}
