package qdd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVectorFactorsOutLargestEdge(t *testing.T) {
	cn := newComplexNumbers(1e-9, 32, 1000)
	inv := 1 / math.Sqrt2
	edges := []Edge{
		{Node: TerminalNode, Weight: cn.getCachedValues(inv, 0)},
		{Node: TerminalNode, Weight: cn.getCachedValues(inv, 0)},
	}
	result := normalizeVector(cn, edges, true)
	require.False(t, result.allZero)

	assert.InDelta(t, 1, cn.normSq(result.outWeight), 1e-9)
	sum := cn.normSq(edges[0].Weight) + cn.normSq(edges[1].Weight)
	assert.InDelta(t, 1, sum, 1e-9)
}

func TestNormalizeVectorAllZeroCollapses(t *testing.T) {
	cn := newComplexNumbers(1e-9, 32, 1000)
	edges := []Edge{zeroEdge(), zeroEdge()}
	result := normalizeVector(cn, edges, true)
	assert.True(t, result.allZero)
}

func TestNormalizeMatrixArgmaxBecomesOne(t *testing.T) {
	cn := newComplexNumbers(1e-9, 32, 1000)
	edges := []Edge{
		{Node: TerminalNode, Weight: cn.getCachedValues(2, 0)},
		zeroEdge(),
		zeroEdge(),
		{Node: TerminalNode, Weight: cn.getCachedValues(1, 0)},
	}
	result := normalizeMatrix(cn, edges, true)
	require.False(t, result.allZero)

	assert.True(t, cn.approxOne(edges[0].Weight), "largest-magnitude edge must normalize to weight ONE")
	assert.InDelta(t, 0.5, cn.val(edges[3].Weight.R), 1e-9)
}

func TestIsZeroEdgeDetectsApproximateZero(t *testing.T) {
	cn := newComplexNumbers(1e-6, 32, 1000)
	tiny := Edge{Node: TerminalNode, Weight: cn.getCachedValues(1e-9, 0)}
	assert.True(t, isZeroEdge(cn, tiny))
	cn.releaseCached(tiny.Weight)
}
