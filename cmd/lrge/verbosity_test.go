package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountFlagIncrementsOnEachSet(t *testing.T) {
	var c countFlag
	require := func(want int) {
		assert.Equal(t, want, int(c))
	}
	require(0)
	assert.NoError(t, c.Set(""))
	require(1)
	assert.NoError(t, c.Set(""))
	assert.NoError(t, c.Set(""))
	require(3)
}

func TestCountFlagString(t *testing.T) {
	var c countFlag
	assert.Equal(t, "0", c.String())
	c.Set("")
	c.Set("")
	assert.Equal(t, "2", c.String())
}
