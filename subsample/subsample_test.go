package subsample

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longread-lrge/lrge/encoding/fastx"
)

func writeFastq(t *testing.T, dir string, n int) string {
	t.Helper()
	path := filepath.Join(dir, "input.fq")
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "@read%d\nACGTACGTAC\n+\nIIIIIIIIII\n", i)
	}
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

func TestAVASelectsExactlyKDistinctReads(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeFastq(t, dir, 50)

	seed := uint64(42)
	res, err := AVA(path, 10, &seed, dir)
	require.NoError(t, err)
	assert.Equal(t, 10, res.K)

	n, err := fastx.CountRecords(mustOpen(t, res.Path))
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, uint64(100), res.TotalBases)
}

func TestAVAClampsWhenRequestExceedsPopulation(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeFastq(t, dir, 5)

	res, err := AVA(path, 100, nil, dir)
	require.NoError(t, err)
	assert.Equal(t, 5, res.K)
}

func TestAVASeedDeterminism(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeFastq(t, dir, 50)
	seed := uint64(7)

	dir1, dir2 := filepath.Join(dir, "a"), filepath.Join(dir, "b")
	require.NoError(t, os.MkdirAll(dir1, 0o755))
	require.NoError(t, os.MkdirAll(dir2, 0o755))

	r1, err := AVA(path, 10, &seed, dir1)
	require.NoError(t, err)
	r2, err := AVA(path, 10, &seed, dir2)
	require.NoError(t, err)

	b1, err := os.ReadFile(r1.Path)
	require.NoError(t, err)
	b2, err := os.ReadFile(r2.Path)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}

func TestTwoSetDisjointTargetAndQuery(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeFastq(t, dir, 100)

	seed := uint64(1)
	res, err := TwoSet(path, 20, 30, &seed, dir)
	require.NoError(t, err)
	assert.Equal(t, 20, res.KTarget)
	assert.Equal(t, 30, res.KQuery)

	targetIDs := readIDs(t, res.TargetPath)
	queryIDs := readIDs(t, res.QueryPath)
	assert.Len(t, targetIDs, 20)
	assert.Len(t, queryIDs, 30)
	for id := range targetIDs {
		_, overlap := queryIDs[id]
		assert.False(t, overlap, "target and query sets must be disjoint")
	}
}

func TestTwoSetFailsWhenTooFewReads(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeFastq(t, dir, 10)

	_, err := TwoSet(path, 5, 10, nil, dir)
	assert.Error(t, err)
}

func TestTwoSetClampsTarget(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := writeFastq(t, dir, 20)

	res, err := TwoSet(path, 15, 10, nil, dir)
	require.NoError(t, err)
	assert.Equal(t, 10, res.KTarget)
	assert.Equal(t, 10, res.KQuery)
}

func mustOpen(t *testing.T, path string) *os.File {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func readIDs(t *testing.T, path string) map[string]struct{} {
	t.Helper()
	f := mustOpen(t, path)
	rd := fastx.NewReader(f)
	ids := make(map[string]struct{})
	var rec fastx.Record
	for rd.Scan(&rec) {
		ids[rec.ID] = struct{}{}
	}
	require.NoError(t, rd.Err())
	return ids
}
