package qdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplexNumbersInternRoundTrip(t *testing.T) {
	cn := newComplexNumbers(1e-9, 32, 1000)
	c := cn.lookupValues(0.5, -0.25)
	assert.InDelta(t, 0.5, cn.val(c.R), 1e-12)
	assert.InDelta(t, -0.25, cn.val(c.I), 1e-12)

	again := cn.lookupValues(0.5, -0.25)
	assert.Equal(t, c, again, "identical values should intern to the same magRef pair")
}

func TestComplexNumbersZeroAndOneArePermanent(t *testing.T) {
	cn := newComplexNumbers(1e-9, 32, 1000)
	assert.True(t, cn.approxZero(cn.lookupValues(0, 0)))
	assert.True(t, cn.approxOne(cn.lookupValues(1, 0)))
}

func TestComplexNumbersScratchCacheBalances(t *testing.T) {
	cn := newComplexNumbers(1e-9, 8, 1000)
	require.Equal(t, 0, cn.CacheCount())

	a := cn.getCachedValues(1, 0)
	b := cn.getCachedValues(0, 1)
	sum := cn.addCached(a, b)
	cn.releaseCached(sum)
	cn.releaseCached(b)
	cn.releaseCached(a)

	assert.Equal(t, 0, cn.CacheCount(), "every acquired scratch slot must be released")
}

func TestComplexNumbersArithmetic(t *testing.T) {
	cn := newComplexNumbers(1e-9, 32, 1000)
	a := cn.lookupValues(1, 2)
	b := cn.lookupValues(3, -1)

	sum := cn.addCached(a, b)
	assert.InDelta(t, 4, cn.val(sum.R), 1e-9)
	assert.InDelta(t, 1, cn.val(sum.I), 1e-9)
	cn.releaseCached(sum)

	prod := cn.mulCached(a, b)
	// (1+2i)(3-1i) = 3 - i + 6i - 2i^2 = 3 + 5i + 2 = 5 + 5i
	assert.InDelta(t, 5, cn.val(prod.R), 1e-9)
	assert.InDelta(t, 5, cn.val(prod.I), 1e-9)
	cn.releaseCached(prod)
}

func TestComplexNumbersReleaseNonScratchIsNoop(t *testing.T) {
	cn := newComplexNumbers(1e-9, 8, 1000)
	interned := cn.lookupValues(1, 1)
	assert.NotPanics(t, func() { cn.releaseCached(interned) })
}
