package minimap2

/*
#cgo LDFLAGS: -lminimap2 -lz -lm -lpthread
#include <stdlib.h>
#include "minimap.h"

// mm_reg1_rev/mm_reg1_inv/mm_reg1_mapq expose mm_reg1_t's C bitfields,
// which cgo cannot address directly.
static int mm_reg1_rev(const mm_reg1_t *r)  { return r->rev; }
static int mm_reg1_inv(const mm_reg1_t *r)  { return r->inv; }
static int mm_reg1_mapq(const mm_reg1_t *r) { return (int)r->mapq; }
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/longread-lrge/lrge/lrgeerr"
)

// Index is an aligner index built once over a scratch FASTQ/FASTA file and
// shared read-only across worker goroutines (spec §4.4, §5: "the aligner
// index is constructed once by the facade and shared read-only across
// workers for the duration of the stage").
type Index struct {
	idx    *C.mm_idx_t
	mapopt C.mm_mapopt_t

	bufs sync.Pool
}

// Build constructs an index over path under preset, using threads worker
// threads for index construction. dual controls whether the aligner is
// asked to report both orientations of every pair (spec §4.4: "ava-ont /
// ava-pb already handle this, so AVA passes dual=false; TwoSet passes
// dual=true").
//
// Build fails if path does not exist, is empty, or preset is unrecognised
// by minimap2's own mm_set_opt (spec §4.4).
func Build(path string, threads int, preset Preset, dual bool) (*Index, error) {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	var idxopt C.mm_idxopt_t
	var mapopt C.mm_mapopt_t
	presetBytes := preset.cstring()
	result := C.mm_set_opt((*C.char)(unsafe.Pointer(&presetBytes[0])), &idxopt, &mapopt)
	if result < 0 {
		return nil, lrgeerr.E(lrgeerr.IO, "unknown minimap2 preset: "+string(preset), nil)
	}
	if dual {
		mapopt.flag &^= C.MM_F_NO_DUAL
	} else {
		mapopt.flag |= C.MM_F_NO_DUAL
	}

	reader := C.mm_idx_reader_open(cPath, &idxopt, nil)
	if reader == nil {
		return nil, lrgeerr.E(lrgeerr.IO, "opening index reader for "+path, nil)
	}
	defer C.mm_idx_reader_close(reader)

	idx := C.mm_idx_reader_read(reader, C.int(threads))
	if idx == nil {
		return nil, lrgeerr.E(lrgeerr.IO, "building index from "+path, nil)
	}

	C.mm_mapopt_update(&mapopt, idx)
	C.mm_idx_index_name(idx)

	index := &Index{idx: idx, mapopt: mapopt}
	index.bufs.New = func() interface{} { return newThreadBuf() }
	return index, nil
}

// Close releases the underlying C index. It must be called exactly once,
// after every worker using the index has stopped calling Map.
func (ix *Index) Close() {
	C.mm_idx_destroy(ix.idx)
}

// ChainScoreThreshold is the aligner's read-only chain-score threshold
// (spec §4.4: "the overlap threshold ... an integer used by C8").
func (ix *Index) ChainScoreThreshold() int {
	return int(ix.mapopt.min_chain_score)
}

// SequenceNames enumerates every sequence name stored in the index, in
// index order. (The TwoSet inverse pipeline seeds its per-query tally from
// SequenceLengths, which carries the same names.)
func (ix *Index) SequenceNames() []string {
	n := int(ix.idx.n_seq)
	names := make([]string, n)
	seqs := (*[1 << 30]C.mm_idx_seq_t)(unsafe.Pointer(ix.idx.seq))[:n:n]
	for i, seq := range seqs {
		names[i] = C.GoString(seq.name)
	}
	return names
}

// SequenceLengths returns every sequence's length in the index, keyed by
// name. The TwoSet inverse pipeline (spec §4.7) uses this to seed its
// per-query tally with every query identifier, including ones that never
// appear as an overlap partner, and to recover each query read's own length
// without re-reading the query scratch file.
func (ix *Index) SequenceLengths() map[string]int {
	n := int(ix.idx.n_seq)
	lengths := make(map[string]int, n)
	seqs := (*[1 << 30]C.mm_idx_seq_t)(unsafe.Pointer(ix.idx.seq))[:n:n]
	for _, seq := range seqs {
		lengths[C.GoString(seq.name)] = int(seq.len)
	}
	return lengths
}
