package ava

import (
	"os"

	"github.com/longread-lrge/lrge"
)

// DefaultNumReads is the default number of reads used by the all-vs-all
// strategy (spec §6, configuration surface default).
const DefaultNumReads = 25000

// Builder configures and constructs a Strategy.
type Builder struct {
	numReads int
	tmpdir   string
	threads  int
	seed     *uint64
	platform lrge.Platform
}

// NewBuilder returns a Builder with the defaults: DefaultNumReads reads,
// the process's default temp directory, one thread, no seed (OS entropy),
// and Nanopore as the platform.
func NewBuilder() *Builder {
	return &Builder{
		numReads: DefaultNumReads,
		tmpdir:   os.TempDir(),
		threads:  1,
		platform: lrge.Nanopore,
	}
}

// NumReads sets the number of reads to subsample and overlap.
func (b *Builder) NumReads(n int) *Builder {
	b.numReads = n
	return b
}

// Tmpdir sets the scratch directory root; its lifetime is owned by the
// caller (spec §3).
func (b *Builder) Tmpdir(dir string) *Builder {
	b.tmpdir = dir
	return b
}

// Threads sets the worker-pool size used for alignment.
func (b *Builder) Threads(n int) *Builder {
	b.threads = n
	return b
}

// Seed sets the PRNG seed for subsampling; nil draws from OS entropy.
func (b *Builder) Seed(seed *uint64) *Builder {
	b.seed = seed
	return b
}

// Platform sets the sequencing platform, which selects the minimap2
// all-vs-all preset.
func (b *Builder) Platform(p lrge.Platform) *Builder {
	b.platform = p
	return b
}

// Build returns a Strategy over input using the configured options.
func (b *Builder) Build(input string) *Strategy {
	return &Strategy{
		input:    input,
		numReads: b.numReads,
		tmpdir:   b.tmpdir,
		threads:  b.threads,
		seed:     b.seed,
		platform: b.platform,
	}
}
