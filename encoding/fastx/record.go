// Package fastx provides a compression-autodetecting reader (spec §4.1) and
// a record iterator (spec §4.2) over FASTQ and FASTA streams.
//
// It is adapted from the teacher's encoding/fastq package: the id/seq
// Scanner shape and the line-oriented Writer are kept; FASTA support, a
// BaseID helper, and a record-count helper are added to meet the
// record-iterator contract spec.md treats as an external collaborator.
package fastx

import "bytes"

// Record is one FASTQ or FASTA read: an identifier, its full header line
// (ID plus any trailing comment), sequence, and number of bases.
type Record struct {
	// ID is the base identifier: the first whitespace-delimited token of
	// the header, with the leading '@' or '>' stripped (spec §3, invariant v).
	ID string
	// Header is the full header line content after the leading '@'/'>',
	// including any comment. Needed only to round-trip FASTQ records.
	Header string
	// Seq is the nucleotide sequence, preserved byte-for-byte (case is not
	// canonicalized; spec §4.2 "the core is case-agnostic").
	Seq []byte
	// Qual is the quality string; empty for FASTA records.
	Qual []byte
}

// NumBases returns the number of bases in the record's sequence.
func (r Record) NumBases() int { return len(r.Seq) }

// BaseID returns the prefix of a FASTQ/FASTA header line up to the first
// ASCII whitespace byte (space or tab), matching spec §3 invariant (v) and
// §4.2's identifier contract. header must not include the leading '@'/'>'.
func BaseID(header string) string {
	if i := bytes.IndexAny([]byte(header), " \t"); i >= 0 {
		return header[:i]
	}
	return header
}
