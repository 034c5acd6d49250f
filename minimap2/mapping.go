package minimap2

import "github.com/longread-lrge/lrge/paf"

// Mapping is an alias for the PAF record type (spec §4.5, C5): the aligner
// facade produces exactly the fields the PAF codec knows how to serialize,
// so there is no separate result type to convert between.
type Mapping = paf.Record
