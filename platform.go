// Package lrge estimates the size of an unknown genome directly from a set
// of long sequencing reads (Oxford Nanopore or PacBio), without assembly and
// without a reference. See the ava and twoset subpackages for the two
// overlap strategies, and the estimate package for the aggregation step
// shared by both.
package lrge

import (
	"strings"

	"github.com/longread-lrge/lrge/lrgeerr"
)

// Platform is the sequencing platform that produced a set of reads. It
// selects which minimap2 all-vs-all preset the all-vs-all strategy uses to
// build its overlap index; the two-set strategy takes no platform and always
// builds its index with the Nanopore preset.
type Platform int

const (
	// Nanopore reads (Oxford Nanopore Technologies). This is the default.
	Nanopore Platform = iota
	// PacBio reads (Pacific Biosciences).
	PacBio
)

func (p Platform) String() string {
	switch p {
	case PacBio:
		return "pacbio"
	default:
		return "nanopore"
	}
}

// ParsePlatform parses a platform string, accepting the long form
// ("nanopore", "pacbio") and the short aliases used by the lrge CLI
// ("ont", "pb"), case-insensitively.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(s) {
	case "pacbio", "pb":
		return PacBio, nil
	case "nanopore", "ont":
		return Nanopore, nil
	default:
		return Nanopore, lrgeerr.E(lrgeerr.InvalidPlatform, "unrecognised platform: "+s, nil)
	}
}
