package qdd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumdd/qdd"
)

func TestNewPackageRejectsCapacityAboveMax(t *testing.T) {
	_, err := qdd.NewPackage(4, qdd.WithMaxQubits(2))
	assert.ErrorIs(t, err, qdd.ErrCapacityExceeded)
}

func TestPackageResizeRejectsShrink(t *testing.T) {
	pkg, err := qdd.NewPackage(4)
	require.NoError(t, err)
	err = pkg.Resize(2)
	assert.ErrorIs(t, err, qdd.ErrInvalidLevel)
}

func TestPackageCacheCountBalancedAfterOperations(t *testing.T) {
	pkg, err := qdd.NewPackage(2)
	require.NoError(t, err)

	before := pkg.CacheCount()

	state, err := pkg.MakeZeroState(2)
	require.NoError(t, err)

	inv := 0.7071067811865476
	hadamard := [4]qdd.ComplexValue{{Re: inv}, {Re: inv}, {Re: inv}, {Re: -inv}}
	h, err := pkg.MakeGateDD(hadamard, 2, nil, 0)
	require.NoError(t, err)

	state = pkg.MultiplyMatrixVector(h, state)
	_ = pkg.InnerProduct(state, state)

	assert.Equal(t, before, pkg.CacheCount(), "every public operation must leave the scratch cache balanced")
}

func TestPackageResetClearsTables(t *testing.T) {
	pkg, err := qdd.NewPackage(2)
	require.NoError(t, err)

	state, err := pkg.MakeZeroState(2)
	require.NoError(t, err)
	assert.Greater(t, pkg.Size(state), 0)

	pkg.Reset()
	stats := pkg.Stats()
	assert.Equal(t, 0, stats.NodeCount)
	assert.Equal(t, 0, stats.CacheDepth)
}

func TestPackageGarbageCollectReclaimsUnreferencedNodes(t *testing.T) {
	pkg, err := qdd.NewPackage(2)
	require.NoError(t, err)

	_, err = pkg.MakeZeroState(2)
	require.NoError(t, err)

	before := pkg.Stats().NodeCount
	assert.Greater(t, before, 0)

	pkg.GarbageCollect(true)
	after := pkg.Stats().NodeCount
	assert.Less(t, after, before, "an unreferenced diagram should be collected once forced")
}
