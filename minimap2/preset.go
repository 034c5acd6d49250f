// Package minimap2 is a thin cgo facade over libminimap2, implementing the
// aligner contract consumed by the overlap pipelines (spec §4.4, §6): build
// a read-only index over a FASTQ/FASTA file under a named preset, then map
// individual query sequences against it from multiple goroutines
// concurrently.
//
// The binding follows the call sequence of minimap2's own C API
// (mm_idx_reader_open/read, mm_mapopt_update, mm_map) rather than any
// particular language's existing wrapper; the cgo idiom itself (small C
// helper functions in the preamble for operations cgo cannot express
// directly, such as bitfield access) follows this module's own
// dsnet/compress-derived cgo style.
package minimap2

// Preset names an alignment preset understood by minimap2's mm_set_opt.
// Only the two all-vs-all presets are exercised by this module's overlap
// pipelines, but the full preset table is kept for completeness and for
// any future component that builds a reference-based index.
type Preset string

const (
	MapOnt     Preset = "map-ont"
	MapHifi    Preset = "map-hifi"
	MapPb      Preset = "map-pb"
	LongReadHq Preset = "lr:hq"
	Asm5       Preset = "asm5"
	Asm10      Preset = "asm10"
	Asm20      Preset = "asm20"
	Splice     Preset = "splice"
	SpliceHq   Preset = "splice:hq"
	ShortRead  Preset = "sr"
	// AvaPb is the PacBio CLR all-vs-all overlap preset (spec §4.4).
	AvaPb Preset = "ava-pb"
	// AvaOnt is the Oxford Nanopore all-vs-all overlap preset (spec §4.4).
	AvaOnt Preset = "ava-ont"
)

// cstring returns the preset name as a NUL-terminated byte slice, the form
// mm_set_opt expects for its preset argument.
func (p Preset) cstring() []byte {
	return append([]byte(p), 0)
}
