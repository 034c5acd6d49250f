package main

import (
	"os"

	"github.com/grailbio/base/errors"
)

// createTempDir creates the scratch directory the pipeline writes its
// intermediate FASTQ/PAF files into (spec §3: "a caller-provided scratch
// directory whose lifetime is externally controlled"), mirroring
// lrge/src/utils.rs::create_temp_dir. If parent is empty, it uses the
// process's default temp directory; parent is created if it doesn't exist.
func createTempDir(parent string) (string, error) {
	if parent == "" {
		parent = os.TempDir()
	} else if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", errors.E(err, "creating temp directory parent:", parent)
	}
	dir, err := os.MkdirTemp(parent, "lrge-")
	if err != nil {
		return "", errors.E(err, "creating temp directory under:", parent)
	}
	return dir, nil
}
