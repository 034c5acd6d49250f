package subsample

import (
	"os"
	"path/filepath"

	"github.com/longread-lrge/lrge/lrgeerr"
)

// createScratch creates outPath, along with its parent directory if
// necessary. Scratch directory lifetime is owned by the caller (spec §3,
// "lifetime is externally controlled"); this package never removes it.
func createScratch(outPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, lrgeerr.E(lrgeerr.IO, "creating scratch directory for "+outPath, err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, lrgeerr.E(lrgeerr.IO, "creating scratch file "+outPath, err)
	}
	return f, nil
}
