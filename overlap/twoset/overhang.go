package twoset

import "github.com/longread-lrge/lrge/minimap2"

// overhang computes a strand-aware overhang length for a mapping (spec
// §4.7): the portion of the alignment outside the chained region on both
// reads, used to distinguish a genuine overlap from an internal match
// (one read's sequence fully contained within the other's).
func overhang(m minimap2.Mapping) int {
	if m.Strand == '+' {
		return min(m.QueryStart, m.TargetStart) + min(m.QueryLen-m.QueryEnd, m.TargetLen-m.TargetEnd)
	}
	return min(m.QueryStart, m.TargetLen-m.TargetEnd) + min(m.QueryLen-m.QueryEnd, m.TargetStart)
}

func alignmentLength(m minimap2.Mapping) int {
	return max(m.QueryEnd-m.QueryStart, m.TargetEnd-m.TargetStart)
}

// isInternalMatch reports whether m's overhang exceeds maxRatio times its
// alignment length (spec §4.7's internal-match filter).
func isInternalMatch(m minimap2.Mapping, maxRatio float64) bool {
	return float64(overhang(m)) > maxRatio*float64(alignmentLength(m))
}

// filterInternalMatches discards mappings classified as internal matches by
// isInternalMatch. It is applied only when the internal-match filter is
// enabled (spec §4.7: "this filter is off by default").
func filterInternalMatches(mappings []minimap2.Mapping, maxRatio float64) []minimap2.Mapping {
	kept := mappings[:0]
	for _, m := range mappings {
		if !isInternalMatch(m, maxRatio) {
			kept = append(kept, m)
		}
	}
	return kept
}
