package minimap2

/*
#include <stdlib.h>
#include "minimap.h"
*/
import "C"

import (
	"unsafe"

	"github.com/longread-lrge/lrge/lrgeerr"
)

// Map aligns seq against the index under queryName, returning zero or more
// mapping records (spec §4.4: "implementations are expected to be
// thread-safe for concurrent map calls against a shared index").
//
// Map is safe to call concurrently from any number of goroutines sharing
// the same *Index.
func (ix *Index) Map(seq []byte, queryName string) ([]Mapping, error) {
	if len(seq) == 0 {
		return nil, lrgeerr.WithIdent(lrgeerr.Map, "empty sequence", queryName, nil)
	}

	tb := ix.bufs.Get().(*threadBuf)
	defer ix.bufs.Put(tb)
	buf := tb.get()

	cQName := C.CString(queryName)
	defer C.free(unsafe.Pointer(cQName))
	cSeq := C.CBytes(seq)
	defer C.free(cSeq)

	var nRegs C.int
	regs := C.mm_map(ix.idx, C.int(len(seq)), (*C.char)(cSeq), &nRegs, buf, &ix.mapopt, cQName)
	if regs == nil && nRegs != 0 {
		return nil, lrgeerr.WithIdent(lrgeerr.Map, "aligner returned a null result set", queryName, nil)
	}
	defer C.free(unsafe.Pointer(regs))

	mappings := make([]Mapping, 0, int(nRegs))
	n := int(nRegs)
	regSlice := (*[1 << 20]C.mm_reg1_t)(unsafe.Pointer(regs))[:n:n]
	for i := 0; i < n; i++ {
		reg := &regSlice[i]
		targetSeq := (*[1 << 30]C.mm_idx_seq_t)(unsafe.Pointer(ix.idx.seq))[:ix.idx.n_seq:ix.idx.n_seq][reg.rid]

		strand := byte('+')
		if C.mm_reg1_rev(reg) != 0 {
			strand = '-'
		}
		tp := classifyTp(reg.id == reg.parent, C.mm_reg1_inv(reg) != 0)

		mappings = append(mappings, Mapping{
			QueryName:   queryName,
			QueryLen:    len(seq),
			QueryStart:  int(reg.qs),
			QueryEnd:    int(reg.qe),
			Strand:      strand,
			TargetName:  C.GoString(targetSeq.name),
			TargetLen:   int(targetSeq.len),
			TargetStart: int(reg.rs),
			TargetEnd:   int(reg.re),
			MatchLen:    int(reg.mlen),
			BlockLen:    int(reg.blen),
			MapQ:        int(C.mm_reg1_mapq(reg)),
			Tp:          tp,
			Cm:          int(reg.cnt),
			S1:          int(reg.score),
			Dv:          float32(reg.div),
			Rl:          int(buf.rep_len),
		})
		if reg.p != nil {
			C.free(unsafe.Pointer(reg.p))
		}
	}
	return mappings, nil
}

// classifyTp maps minimap2's (id==parent, inv) pair to the PAF tp:A: tag
// (spec §4.5): primary/secondary, optionally flagged as an inversion.
func classifyTp(isPrimary, isInversion bool) byte {
	switch {
	case isPrimary && isInversion:
		return 'I'
	case isPrimary:
		return 'P'
	case isInversion:
		return 'i'
	default:
		return 'S'
	}
}
