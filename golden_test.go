package qdd_test

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/quantumdd/qdd"
)

// snapshotVector renders an amplitude vector the same way the qddctl
// CLI does, giving the golden fixture a human-legible diff on failure.
func snapshotVector(vec []qdd.ComplexValue, bits int) []byte {
	var buf bytes.Buffer
	for i, amp := range vec {
		fmt.Fprintf(&buf, "|%0*b> %.6f%+.6fi\n", bits, i, amp.Re, amp.Im)
	}
	return buf.Bytes()
}

func TestBellStateGolden(t *testing.T) {
	pkg, err := qdd.NewPackage(2)
	require.NoError(t, err)

	state, err := pkg.MakeZeroState(2)
	require.NoError(t, err)

	inv := 1 / math.Sqrt2
	hadamard := [4]qdd.ComplexValue{{Re: inv}, {Re: inv}, {Re: inv}, {Re: -inv}}
	h, err := pkg.MakeGateDD(hadamard, 2, nil, 0)
	require.NoError(t, err)
	state = pkg.MultiplyMatrixVector(h, state)

	pauliX := [4]qdd.ComplexValue{{}, {Re: 1}, {Re: 1}, {}}
	cx, err := pkg.MakeGateDD(pauliX, 2, qdd.NewControlSet().AddPositive(0), 1)
	require.NoError(t, err)
	state = pkg.MultiplyMatrixVector(cx, state)

	vec := make([]qdd.ComplexValue, 4)
	pkg.GetVector(state, 2, vec)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "bell_state", snapshotVector(vec, 2))
}
