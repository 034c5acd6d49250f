// Command lrge estimates the size of an unknown genome directly from a set
// of long sequencing reads, without assembly and without a reference.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"

	"github.com/longread-lrge/lrge"
	"github.com/longread-lrge/lrge/estimate"
	"github.com/longread-lrge/lrge/overlap/ava"
	"github.com/longread-lrge/lrge/overlap/twoset"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] INPUT\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Estimate a genome's size from a set of long reads, without assembly or a reference.")
	fmt.Fprintln(os.Stderr, "\nFlags:")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage

	var (
		targetNumReads = flag.Int("T", twoset.DefaultTargetNumReads, "target `reads` to use for the two-set strategy (alias --target)")
		queryNumReads  = flag.Int("Q", twoset.DefaultQueryNumReads, "query `reads` to use for the two-set strategy (alias --query)")
		numReads       = flag.Int("n", 0, "`reads` to use for the all-vs-all strategy; if set, overrides -T/-Q (alias --num)")
		platformFlag   = flag.String("P", "ont", "sequencing `platform`: ont/nanopore or pb/pacbio (alias --platform)")
		threads        = flag.Int("t", 1, "number of `threads` to use")
		keepTemp       = flag.Bool("C", false, "don't clean up the temporary scratch directory (alias --keep-temp)")
		tempDir        = flag.String("D", "", "`dir` to create the temporary scratch directory in (alias --temp)")
		seedFlag       = flag.Uint64("s", 0, "random `seed` to use, for a repeatable estimate (alias --seed; 0 means OS entropy)")
		output         = flag.String("o", "-", "`path` to write the estimate to; \"-\" means stdout (alias --output)")
		withInfinity   = flag.Bool("with-infinity", false, "retain reads with no overlaps (±∞ estimates) instead of dropping them before aggregation")
		lowerQ         = flag.Float64("lower-q", estimate.DefaultLowerQuantile, "lower `quantile` of the confidence interval")
		upperQ         = flag.Float64("upper-q", estimate.DefaultUpperQuantile, "upper `quantile` of the confidence interval")
		removeInternal = flag.Bool("remove-internal", false, "discard internal-match overlaps (two-set strategy only)")
		maxOverhang    = flag.Float64("max-overhang-ratio", 0.1, "max overhang-to-alignment-length `ratio` before a mapping is considered an internal match")
		useMinRef      = flag.Bool("use-min-ref", false, "build the index over whichever of target/query has fewer bases (two-set strategy only)")
		precise        = flag.Bool("precise", false, "print the raw estimate instead of rounding to the nearest base")
	)
	flag.IntVar(targetNumReads, "target", twoset.DefaultTargetNumReads, "")
	flag.IntVar(queryNumReads, "query", twoset.DefaultQueryNumReads, "")
	flag.IntVar(numReads, "num", 0, "")
	flag.StringVar(platformFlag, "platform", "ont", "")
	flag.BoolVar(keepTemp, "keep-temp", false, "")
	flag.StringVar(tempDir, "temp", "", "")
	flag.Uint64Var(seedFlag, "seed", 0, "")
	flag.StringVar(output, "output", "-", "")

	var quiet, verbose countFlag
	flag.Var(&quiet, "q", "decrease verbosity; repeatable (alias --quiet)")
	flag.Var(&quiet, "quiet", "")
	flag.Var(&verbose, "v", "increase verbosity; repeatable (alias --verbose)")
	flag.Var(&verbose, "verbose", "")

	cleanup := grail.Init()
	defer cleanup()

	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	// sum > 0: more detail (debug/trace); sum < 0: less (warnings/errors
	// only), mirroring lrge/src/main.rs::setup_logging's verbose-quiet sum.
	verbosity := int(verbose) - int(quiet)
	infof := func(format string, args ...interface{}) {
		if verbosity >= 0 {
			log.Printf(format, args...)
		}
	}
	debugf := func(format string, args ...interface{}) {
		if verbosity >= 1 {
			log.Printf(format, args...)
		} else {
			log.Debug.Printf(format, args...)
		}
	}

	platform, err := lrge.ParsePlatform(*platformFlag)
	if err != nil {
		log.Fatalf("invalid platform: %v", err)
	}

	tmpdir, err := createTempDir(*tempDir)
	if err != nil {
		log.Fatalf("failed to create scratch directory: %v", err)
	}
	if *keepTemp {
		infof("created temporary directory at %s", tmpdir)
	} else {
		debugf("created temporary directory at %s", tmpdir)
		defer os.RemoveAll(tmpdir)
	}

	var seed *uint64
	if *seedFlag != 0 {
		seed = seedFlag
	}

	out, err := openOutput(*output)
	if err != nil {
		log.Fatalf("failed to open output: %v", err)
	}
	defer out.Close()

	var estimator estimate.Estimator
	if *numReads > 0 {
		infof("running all-vs-all strategy with %d reads", *numReads)
		estimator = ava.NewBuilder().
			NumReads(*numReads).
			Threads(*threads).
			Tmpdir(tmpdir).
			Seed(seed).
			Platform(platform).
			Build(input)
	} else {
		infof("running two-set strategy with %d target reads and %d query reads", *targetNumReads, *queryNumReads)
		builder := twoset.NewBuilder().
			TargetNumReads(*targetNumReads).
			QueryNumReads(*queryNumReads).
			Threads(*threads).
			Tmpdir(tmpdir).
			Seed(seed).
			UseMinRef(*useMinRef)
		if *removeInternal {
			builder = builder.RemoveInternal(*maxOverhang)
		}
		estimator = builder.Build(input)
	}

	result, err := estimator.Estimate(!*withInfinity, lowerQ, upperQ)
	if err != nil {
		log.Fatalf("failed to generate estimate: %v", err)
	}

	if result.Estimate == nil {
		if *withInfinity {
			log.Fatal("no estimates were generated")
		}
		log.Fatal("no finite estimates were generated")
	}

	msg := fmt.Sprintf("estimated genome size: %s", formatEstimate(*result.Estimate))
	if result.Lower != nil && result.Upper != nil {
		msg += fmt.Sprintf(" (IQR: %s - %s)", formatEstimate(*result.Lower), formatEstimate(*result.Upper))
	}
	infof("%s", msg)

	if *precise {
		fmt.Fprintf(out, "%g\n", *result.Estimate)
	} else {
		fmt.Fprintf(out, "%.0f\n", *result.Estimate)
	}
	infof("done")
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
