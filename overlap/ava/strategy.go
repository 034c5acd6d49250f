// Package ava implements the all-vs-all overlap pipeline (spec §4.6,
// component C6): a single read set is mapped against itself, and a
// genome-size estimate is produced for every participating read from its
// overlap count with the rest of the set.
package ava

import (
	"bufio"
	"os"
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"

	"github.com/longread-lrge/lrge"
	"github.com/longread-lrge/lrge/encoding/fastx"
	"github.com/longread-lrge/lrge/estimate"
	"github.com/longread-lrge/lrge/lrgeerr"
	"github.com/longread-lrge/lrge/minimap2"
	"github.com/longread-lrge/lrge/subsample"
)

// channelCapacity bounds the producer/consumer channel, matching spec §5
// ("capacity 25,000 for AVA").
const channelCapacity = 25000

// Strategy runs the all-vs-all overlap pipeline over a single input file.
// Construct one with a Builder.
type Strategy struct {
	input     string
	numReads  int
	tmpdir    string
	threads   int
	seed      *uint64
	platform  lrge.Platform
	estimates []float32
	noMapping uint32
	ran       bool
}

type readMsg struct {
	id  string
	seq []byte
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
	sample, err := subsample.AVA(s.input, s.numReads, s.seed, s.tmpdir)
	if err != nil {
		return err
	}
	s.numReads = sample.K

	preset := minimap2.AvaOnt
	if s.platform == lrge.PacBio {
		preset = minimap2.AvaPb
	}

	log.Printf("ava: building index over %s (%d reads, preset %s)", sample.Path, sample.K, preset)
	index, err := minimap2.Build(sample.Path, s.threads, preset, false)
	if err != nil {
		return err
	}
	defer index.Close()

	estimates, noMapping, err := alignAndEstimate(index, sample, s.tmpdir, s.threads)
	if err != nil {
		return err
	}
	s.estimates = estimates
	s.noMapping = noMapping

	if noMapping > 0 {
		percent := float64(noMapping) / float64(s.numReads) * 100
		log.Printf("ava: %d (%.2f%%) read(s) did not overlap any other reads", noMapping, percent)
	} else {
		log.Printf("ava: all reads had at least one overlap")
	}
	return nil
}

// alignAndEstimate runs the producer/worker-pool pipeline of spec §4.6 over
// sample.Path and turns the resulting overlap tally into a per-read
// estimate vector.
func alignAndEstimate(index aligner, sample *subsample.Result, tmpdir string, threads int) ([]float32, uint32, error) {
	pafPath := tmpdir + "/overlaps.paf"
	pafFile, err := os.Create(pafPath)
	if err != nil {
		return nil, 0, lrgeerr.E(lrgeerr.IO, "creating "+pafPath, err)
	}
	defer pafFile.Close()
	pafWriter := bufio.NewWriter(pafFile)
	defer pafWriter.Flush()

	p := &pipeline{
		index:       index,
		pafWriter:   pafWriter,
		readLengths: make(map[string]int, sample.K),
		tally:       make(map[string]int, sample.K),
		seenPairs:   make(map[[2]string]struct{}, sample.K),
	}

	ch := make(chan readMsg, channelCapacity)

	var producerErr error
	var producerWG sync.WaitGroup
	producerWG.Add(1)
	go func() {
		defer producerWG.Done()
		defer close(ch)
		producerErr = produce(sample.Path, p, ch)
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
				if err := p.handle(msg); err != nil {
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

	return p.estimates(sample)
}

// produce streams records from path, pushing (id, sequence) pairs into ch
// and recording every id's length in p.readLengths; inserting an
// already-present id is a hard error (spec §4.6 step 1).
func produce(path string, p *pipeline, ch chan<- readMsg) error {
	f, err := os.Open(path)
	if err != nil {
		return lrgeerr.E(lrgeerr.IO, "opening scratch reads file", err)
	}
	defer f.Close()

	rd := fastx.NewReader(f)
	var rec fastx.Record
	for rd.Scan(&rec) {
		id := rec.ID
		seq := append([]byte(nil), rec.Seq...)

		p.mu.Lock()
		if _, dup := p.readLengths[id]; dup {
			p.mu.Unlock()
			return lrgeerr.WithIdent(lrgeerr.DuplicateReadIdentifier, "duplicate read id in subsample", id, nil)
		}
		p.readLengths[id] = len(seq)
		p.mu.Unlock()

		ch <- readMsg{id: id, seq: seq}
	}
	if err := rd.Err(); err != nil {
		return lrgeerr.E(lrgeerr.FastqParse, "scanning scratch reads file", err)
	}
	return nil
}
