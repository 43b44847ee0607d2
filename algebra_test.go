package qdd_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumdd/qdd"
)

func hadamardMatrix() [4]qdd.ComplexValue {
	inv := 1 / math.Sqrt2
	return [4]qdd.ComplexValue{{Re: inv}, {Re: inv}, {Re: inv}, {Re: -inv}}
}

func pauliXMatrix() [4]qdd.ComplexValue {
	return [4]qdd.ComplexValue{{}, {Re: 1}, {Re: 1}, {}}
}

func TestBellStateAmplitudes(t *testing.T) {
	pkg, err := qdd.NewPackage(2)
	require.NoError(t, err)

	state, err := pkg.MakeZeroState(2)
	require.NoError(t, err)

	h, err := pkg.MakeGateDD(hadamardMatrix(), 2, nil, 0)
	require.NoError(t, err)
	state = pkg.MultiplyMatrixVector(h, state)

	cx, err := pkg.MakeGateDD(pauliXMatrix(), 2, qdd.NewControlSet().AddPositive(0), 1)
	require.NoError(t, err)
	state = pkg.MultiplyMatrixVector(cx, state)

	vec := make([]qdd.ComplexValue, 4)
	pkg.GetVector(state, 2, vec)

	inv := 1 / math.Sqrt2
	assert.InDelta(t, inv, vec[0].Re, 1e-9)
	assert.InDelta(t, 0, vec[1].Re, 1e-9)
	assert.InDelta(t, 0, vec[2].Re, 1e-9)
	assert.InDelta(t, inv, vec[3].Re, 1e-9)
}

func TestGHZStateFidelityWithItselfIsOne(t *testing.T) {
	const n = 3
	pkg, err := qdd.NewPackage(n)
	require.NoError(t, err)

	state, err := pkg.MakeZeroState(n)
	require.NoError(t, err)

	h, err := pkg.MakeGateDD(hadamardMatrix(), n, nil, n-1)
	require.NoError(t, err)
	state = pkg.MultiplyMatrixVector(h, state)

	for target := n - 2; target >= 0; target-- {
		cx, err := pkg.MakeGateDD(pauliXMatrix(), n, qdd.NewControlSet().AddPositive(target+1), target)
		require.NoError(t, err)
		state = pkg.MultiplyMatrixVector(cx, state)
	}

	vec := make([]qdd.ComplexValue, 1<<n)
	pkg.GetVector(state, n, vec)
	inv := 1 / math.Sqrt2
	assert.InDelta(t, inv, vec[0].Re, 1e-9)
	assert.InDelta(t, inv, vec[len(vec)-1].Re, 1e-9)

	assert.InDelta(t, 1, pkg.Fidelity(state, state), 1e-9)
}

func TestToffoliFlipsOnlyWhenBothControlsSet(t *testing.T) {
	cases := []struct {
		bits     []qdd.StateAmplitude
		wantFlip bool
	}{
		{[]qdd.StateAmplitude{qdd.StateOne, qdd.StateOne, qdd.StateZero}, true},
		{[]qdd.StateAmplitude{qdd.StateOne, qdd.StateZero, qdd.StateZero}, false},
	}

	for _, tc := range cases {
		pkg, err := qdd.NewPackage(3)
		require.NoError(t, err)

		// tc.bits is written in ket order (qubit 2 first); MakeBasisState
		// takes states[0] as qubit 0.
		states := make([]qdd.StateAmplitude, len(tc.bits))
		for i, b := range tc.bits {
			states[len(tc.bits)-1-i] = b
		}
		state, err := pkg.MakeBasisState(3, states)
		require.NoError(t, err)

		controls := qdd.NewControlSet().AddPositive(1).AddPositive(2)
		toffoli, err := pkg.MakeGateDD(pauliXMatrix(), 3, controls, 0)
		require.NoError(t, err)
		state = pkg.MultiplyMatrixVector(toffoli, state)

		vec := make([]qdd.ComplexValue, 8)
		pkg.GetVector(state, 3, vec)

		wantIndex := 0
		for i, b := range tc.bits {
			if b == qdd.StateOne {
				wantIndex |= 1 << uint(2-i)
			}
		}
		if tc.wantFlip {
			wantIndex ^= 1
		}
		assert.InDelta(t, 1, vec[wantIndex].Re, 1e-9)
	}
}

func TestMultiplyByIdentityIsNoop(t *testing.T) {
	pkg, err := qdd.NewPackage(2)
	require.NoError(t, err)

	state, err := pkg.MakeBasisState(2, []qdd.StateAmplitude{qdd.StateOne, qdd.StateZero})
	require.NoError(t, err)

	id := pkg.MakeIdentity(2)
	result := pkg.MultiplyMatrixVector(id, state)
	assert.Equal(t, state, result)
}

func TestTransposeOfTransposeIsIdentity(t *testing.T) {
	pkg, err := qdd.NewPackage(2)
	require.NoError(t, err)

	cx, err := pkg.MakeGateDD(pauliXMatrix(), 2, qdd.NewControlSet().AddPositive(0), 1)
	require.NoError(t, err)

	twice := pkg.Transpose(pkg.Transpose(cx))
	assert.Equal(t, cx, twice)
}

func TestAddVectorIsCommutative(t *testing.T) {
	pkg, err := qdd.NewPackage(2)
	require.NoError(t, err)

	a, err := pkg.MakeBasisState(2, []qdd.StateAmplitude{qdd.StateZero, qdd.StateZero})
	require.NoError(t, err)
	b, err := pkg.MakeBasisState(2, []qdd.StateAmplitude{qdd.StateOne, qdd.StateOne})
	require.NoError(t, err)

	ab := pkg.AddVector(a, b)
	ba := pkg.AddVector(b, a)
	assert.Equal(t, ab.Node, ba.Node)
}
