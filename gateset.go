package qdd

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// ControlSet names the control qubits of a gate DD, each with a
// required polarity (positive: control fires on |1>, negative: on
// |0>). Backed by roaring bitmaps so many-controlled gates over wide
// qubit ranges stay cheap to build and to query, rather than paying
// for an O(n) slice scan per level while walking makeGateDD.
type ControlSet struct {
	positive *roaring.Bitmap
	negative *roaring.Bitmap
}

// NewControlSet returns an empty control set.
func NewControlSet() *ControlSet {
	return &ControlSet{positive: roaring.New(), negative: roaring.New()}
}

// AddPositive marks qubit as a positive control.
func (c *ControlSet) AddPositive(qubit int) *ControlSet {
	c.positive.Add(uint32(qubit))
	return c
}

// AddNegative marks qubit as a negative control.
func (c *ControlSet) AddNegative(qubit int) *ControlSet {
	c.negative.Add(uint32(qubit))
	return c
}

// Contains reports whether qubit is a control of either polarity.
func (c *ControlSet) Contains(qubit int) bool {
	if c == nil {
		return false
	}
	q := uint32(qubit)
	return c.positive.Contains(q) || c.negative.Contains(q)
}

// Polarity reports whether qubit is a positive control. Only valid
// when Contains(qubit) is true.
func (c *ControlSet) Polarity(qubit int) bool {
	return c.positive.Contains(uint32(qubit))
}

// Len returns the total number of controls, both polarities.
func (c *ControlSet) Len() int {
	if c == nil {
		return 0
	}
	return int(c.positive.GetCardinality() + c.negative.GetCardinality())
}

// Controls returns every control qubit in ascending order, alongside
// its polarity, giving callers (and cache-key builders) a canonical
// iteration order regardless of insertion order.
func (c *ControlSet) Controls() []controlEntry {
	if c == nil {
		return nil
	}
	out := make([]controlEntry, 0, c.Len())
	it := c.positive.Iterator()
	for it.HasNext() {
		out = append(out, controlEntry{qubit: int(it.Next()), positive: true})
	}
	it = c.negative.Iterator()
	for it.HasNext() {
		out = append(out, controlEntry{qubit: int(it.Next()), positive: false})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].qubit < out[j].qubit })
	return out
}

// key renders the control set into the canonical cache-key encoding
// consumed by toffoliKey.
func (c *ControlSet) key() string {
	entries := c.Controls()
	buf := make([]byte, 0, len(entries)*4)
	for _, e := range entries {
		buf = appendInt(buf, e.qubit)
		if e.positive {
			buf = append(buf, "+,"...)
		} else {
			buf = append(buf, "-,"...)
		}
	}
	return string(buf)
}

func appendInt(buf []byte, v int) []byte {
	if v == 0 {
		return append(buf, '0')
	}
	if v < 0 {
		buf = append(buf, '-')
		v = -v
	}
	start := len(buf)
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}
