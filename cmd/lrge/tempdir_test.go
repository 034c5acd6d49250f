package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTempDirWithEmptyParentUsesDefault(t *testing.T) {
	dir, err := createTempDir("")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.True(t, strings.HasPrefix(filepath.Base(dir), "lrge-"))
}

func TestCreateTempDirUnderExplicitParent(t *testing.T) {
	parent, parentCleanup := testutil.TempDir(t, "", "")
	defer parentCleanup()
	dir, err := createTempDir(parent)
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	assert.True(t, strings.HasPrefix(dir, parent))
}

func TestCreateTempDirCreatesMissingParent(t *testing.T) {
	base, baseCleanup := testutil.TempDir(t, "", "")
	defer baseCleanup()
	parent := filepath.Join(base, "does-not-exist-yet")
	dir, err := createTempDir(parent)
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	assert.True(t, strings.HasPrefix(dir, parent))
}
