package twoset

import "os"

// Default subsample sizes (spec §6 lists target/query counts as a required
// configuration pair with no named default in the core; these mirror the
// reference CLI's defaults).
const (
	DefaultTargetNumReads = 10000
	DefaultQueryNumReads  = 5000
)

// Builder configures and constructs a Strategy.
type Builder struct {
	kTarget int
	kQuery  int
	tmpdir  string
	threads int
	seed    *uint64

	removeInternal   bool
	maxOverhangRatio float64
	useMinRef        bool
}

// NewBuilder returns a Builder with the defaults: DefaultTargetNumReads
// target reads, DefaultQueryNumReads query reads, the process's default
// temp directory, one thread, no seed (OS entropy), the internal-match
// filter disabled, and the inverse pipeline disabled.
func NewBuilder() *Builder {
	return &Builder{
		kTarget: DefaultTargetNumReads,
		kQuery:  DefaultQueryNumReads,
		tmpdir:  os.TempDir(),
		threads: 1,
	}
}

// TargetNumReads sets the number of target reads to subsample.
func (b *Builder) TargetNumReads(n int) *Builder {
	b.kTarget = n
	return b
}

// QueryNumReads sets the number of query reads to subsample.
func (b *Builder) QueryNumReads(n int) *Builder {
	b.kQuery = n
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

// RemoveInternal enables the internal-match overhang filter, discarding
// mappings whose overhang exceeds maxRatio times the alignment length
// (spec §4.7). It is off by default.
func (b *Builder) RemoveInternal(maxRatio float64) *Builder {
	b.removeInternal = true
	b.maxOverhangRatio = maxRatio
	return b
}

// UseMinRef enables the inverse pipeline whenever the target set turns out
// to hold more bases than the query set (spec §4.7 step 3).
func (b *Builder) UseMinRef(yes bool) *Builder {
	b.useMinRef = yes
	return b
}

// Build returns a Strategy over input using the configured options.
func (b *Builder) Build(input string) *Strategy {
	return &Strategy{
		input:            input,
		kTarget:          b.kTarget,
		kQuery:           b.kQuery,
		tmpdir:           b.tmpdir,
		threads:          b.threads,
		seed:             b.seed,
		removeInternal:   b.removeInternal,
		maxOverhangRatio: b.maxOverhangRatio,
		useMinRef:        b.useMinRef,
	}
}
