package qdd

import "github.com/bits-and-blooms/bitset"

// QubitMask names a set of qubit indices marked ancillary or garbage,
// backed by a dense bitset -- ancilla/garbage marks are typically a
// small, low-index-dense subset of the qubit range, unlike the sparse
// wide control sets ControlSet targets, so a flat bitset outperforms a
// roaring bitmap here.
type QubitMask struct {
	bits *bitset.BitSet
}

// NewQubitMask returns an empty mask sized for up to nqubits bits.
func NewQubitMask(nqubits int) *QubitMask {
	return &QubitMask{bits: bitset.New(uint(nqubits))}
}

// Mark flags qubit as belonging to the set.
func (m *QubitMask) Mark(qubit int) *QubitMask {
	m.bits.Set(uint(qubit))
	return m
}

// IsMarked reports whether qubit is flagged.
func (m *QubitMask) IsMarked(qubit int) bool {
	if m == nil {
		return false
	}
	return m.bits.Test(uint(qubit))
}

// Count returns the number of marked qubits.
func (m *QubitMask) Count() int {
	if m == nil {
		return 0
	}
	return int(m.bits.Count())
}
