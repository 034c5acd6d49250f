// Package subsample draws a uniform, seed-reproducible subset of records
// from a FASTQ/FASTA input and materializes it as scratch file(s) for the
// overlap pipelines (spec §4.3, component C3).
package subsample

import (
	"math"
	"path/filepath"

	"github.com/grailbio/base/log"

	"github.com/longread-lrge/lrge"
	"github.com/longread-lrge/lrge/encoding/fastx"
	"github.com/longread-lrge/lrge/lrgeerr"
)

// maxReads is the largest record count the core accepts for a single input,
// 2^32 - 1 (spec §4.3 step 1).
const maxReads = math.MaxUint32

// Result is the outcome of a single-set subsample (AVA).
type Result struct {
	// Path is the scratch FASTQ file containing the selected reads.
	Path string
	// TotalBases is the sum of sequence lengths across selected reads.
	TotalBases uint64
	// K is the (possibly clamped) number of reads actually drawn.
	K int
}

// TwoSetResult is the outcome of a two-way subsample (TwoSet): a target set
// and a disjoint query set drawn from the same input.
type TwoSetResult struct {
	TargetPath  string
	QueryPath   string
	TargetBases uint64
	QueryBases  uint64
	KTarget     int
	KQuery      int
}

// countRecords opens path (compression auto-detected) and counts its
// records, failing per spec §4.3 step 1 if the file holds more than
// 2^32-1 records.
func countRecords(path string) (int, error) {
	r, err := fastx.Open(path)
	if err != nil {
		return 0, lrgeerr.E(lrgeerr.IO, "opening "+path, err)
	}
	if closer, ok := r.(interface{ Close() error }); ok {
		defer closer.Close()
	}
	n, err := fastx.CountRecords(r)
	if err != nil {
		return 0, lrgeerr.E(lrgeerr.FastqParse, "counting records in "+path, err)
	}
	if n > maxReads {
		return 0, lrgeerr.E(lrgeerr.TooManyReads, "too many reads in "+path, nil)
	}
	return n, nil
}

// AVA draws k reads uniformly without replacement from path and writes them
// to a "reads.fq" scratch file under tmpdir (spec §4.3, AVA branch: "if
// N < k, clamp k = N and warn").
func AVA(path string, k int, seed *uint64, tmpdir string) (*Result, error) {
	n, err := countRecords(path)
	if err != nil {
		return nil, err
	}
	if n < k {
		log.Printf("subsample: requested %d reads but %s only has %d; clamping", k, path, n)
		k = n
	}

	indices := lrge.UniqueRandomSet(k, uint32(n), seed)
	set := toSet(indices)

	outPath := filepath.Join(tmpdir, "reads.fq")
	_, total, err := writeSelectedSet(path, outPath, set)
	if err != nil {
		return nil, err
	}
	return &Result{Path: outPath, TotalBases: total, K: k}, nil
}

// TwoSet draws kTarget + kQuery disjoint reads from path and writes them to
// separate "target.fq" and "query.fq" scratch files (spec §4.3, TwoSet
// branch).
func TwoSet(path string, kTarget, kQuery int, seed *uint64, tmpdir string) (*TwoSetResult, error) {
	n, err := countRecords(path)
	if err != nil {
		return nil, err
	}
	if n <= kQuery {
		return nil, lrgeerr.E(lrgeerr.TooFewReads, "not enough reads for the requested query set", nil)
	}
	if n < kTarget+kQuery {
		clamped := n - kQuery
		log.Printf("subsample: requested %d target + %d query reads but %s only has %d; clamping target to %d",
			kTarget, kQuery, path, n, clamped)
		kTarget = clamped
	}

	draw := lrge.UniqueRandomSet(kTarget+kQuery, uint32(n), seed)
	targetSet := toSet(draw[:kTarget])
	querySet := toSet(draw[kTarget:])

	targetPath := filepath.Join(tmpdir, "target.fq")
	queryPath := filepath.Join(tmpdir, "query.fq")

	_, targetBases, err := writeSelectedSet(path, targetPath, targetSet)
	if err != nil {
		return nil, err
	}
	_, queryBases, err := writeSelectedSet(path, queryPath, querySet)
	if err != nil {
		return nil, err
	}

	return &TwoSetResult{
		TargetPath:  targetPath,
		QueryPath:   queryPath,
		TargetBases: targetBases,
		QueryBases:  queryBases,
		KTarget:     kTarget,
		KQuery:      kQuery,
	}, nil
}

func toSet(indices []uint32) map[uint32]struct{} {
	set := make(map[uint32]struct{}, len(indices))
	for _, idx := range indices {
		set[idx] = struct{}{}
	}
	return set
}

// writeSelectedSet re-opens path, scans records sequentially by index, and
// writes the ones named in set to outPath, stopping once every requested
// index has been seen (spec §4.3 step 4).
func writeSelectedSet(path, outPath string, set map[uint32]struct{}) (int, uint64, error) {
	r, err := fastx.Open(path)
	if err != nil {
		return 0, 0, lrgeerr.E(lrgeerr.IO, "re-opening "+path, err)
	}
	if closer, ok := r.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	out, err := createScratch(outPath)
	if err != nil {
		return 0, 0, err
	}
	defer out.Close()
	w := fastx.NewWriter(out)

	rd := fastx.NewReader(r)
	var rec fastx.Record
	var idx uint32
	written := 0
	var totalBases uint64
	remaining := len(set)
	for remaining > 0 && rd.Scan(&rec) {
		if _, ok := set[idx]; ok {
			if err := w.WriteFastq(&rec); err != nil {
				return 0, 0, lrgeerr.E(lrgeerr.IO, "writing scratch file "+outPath, err)
			}
			written++
			totalBases += uint64(rec.NumBases())
			remaining--
		}
		idx++
	}
	if err := rd.Err(); err != nil {
		return 0, 0, lrgeerr.E(lrgeerr.FastqParse, "re-scanning "+path, err)
	}
	return written, totalBases, nil
}
