package qdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestControlSetPolarityAndOrdering(t *testing.T) {
	cs := NewControlSet().AddPositive(3).AddNegative(1).AddPositive(0)

	assert.True(t, cs.Contains(3))
	assert.True(t, cs.Polarity(3))
	assert.False(t, cs.Polarity(1))
	assert.False(t, cs.Contains(2))
	assert.Equal(t, 3, cs.Len())

	controls := cs.Controls()
	assert.Equal(t, []int{0, 1, 3}, []int{controls[0].qubit, controls[1].qubit, controls[2].qubit})
}

func TestControlSetKeyIsOrderIndependent(t *testing.T) {
	a := NewControlSet().AddPositive(1).AddPositive(2)
	b := NewControlSet().AddPositive(2).AddPositive(1)
	assert.Equal(t, a.key(), b.key())
}

func TestNilControlSetIsEmpty(t *testing.T) {
	var cs *ControlSet
	assert.False(t, cs.Contains(0))
	assert.Equal(t, 0, cs.Len())
	assert.Empty(t, cs.Controls())
}
