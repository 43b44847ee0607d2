package qdd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumdd/qdd"
)

func TestGetMatrixIdentity(t *testing.T) {
	pkg, err := qdd.NewPackage(2)
	require.NoError(t, err)

	id := pkg.MakeIdentity(2)
	out := make([][]qdd.ComplexValue, 4)
	for i := range out {
		out[i] = make([]qdd.ComplexValue, 4)
	}
	pkg.GetMatrix(id, 2, out)

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			want := 0.0
			if row == col {
				want = 1.0
			}
			assert.InDelta(t, want, out[row][col].Re, 1e-9)
		}
	}
}

func TestSizeCountsSharedTerminal(t *testing.T) {
	pkg, err := qdd.NewPackage(2)
	require.NoError(t, err)

	state, err := pkg.MakeZeroState(2)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pkg.Size(state), 1)
}

func TestCheckGlobalAcceptsWellFormedState(t *testing.T) {
	pkg, err := qdd.NewPackage(3)
	require.NoError(t, err)

	state, err := pkg.MakeBasisState(3, []qdd.StateAmplitude{qdd.StatePlus, qdd.StateZero, qdd.StateOne})
	require.NoError(t, err)
	assert.NoError(t, pkg.CheckGlobal(state))
}
