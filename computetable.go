package qdd

// computeSlots is the fixed size of every binary compute table. A power
// of two so the hash can be masked rather than reduced with a modulo.
const computeSlots = 1 << 16

// cachedEdge is a memoized result: a node pointer plus a raw complex
// value rather than an interned Complex, since the node the value
// belongs with may still be under construction (scratch-weighted) when
// the entry is inserted. Storing the value directly, instead of a
// magRef into the scratch cache, keeps a hit valid even after the
// scratch slot that produced it has since been reused.
type cachedEdge struct {
	node   NodeID
	weight ComplexValue
}

type computeEntry struct {
	valid  bool
	left   Edge
	right  Edge
	result cachedEdge
}

// ComputeTable is a direct-mapped, overwrite-on-collision memoization
// cache for a binary algebra operation keyed by two operand edges. It
// never chains: a collision simply replaces the older entry, trading
// memoization coverage for a fixed, small memory footprint.
type ComputeTable struct {
	slots [computeSlots]computeEntry
}

func newComputeTable() *ComputeTable {
	return &ComputeTable{}
}

func hashEdgePair(a, b Edge) int {
	h := uint32(a.Node)*2654435761 + uint32(a.Weight.R)*40503 + uint32(a.Weight.I)*2246822519
	h += uint32(b.Node)*3266489917 + uint32(b.Weight.R)*668265263 + uint32(b.Weight.I)*374761393
	return int(h & (computeSlots - 1))
}

// lookup returns the memoized result for (a, b) and true on a hit, or
// the zero value and false on a miss. Both operand edges must compare
// pointer-and-weight equal to the stored entry, not merely value-equal.
func (t *ComputeTable) lookup(a, b Edge) (cachedEdge, bool) {
	e := &t.slots[hashEdgePair(a, b)]
	if !e.valid || e.left != a || e.right != b {
		return cachedEdge{}, false
	}
	return e.result, true
}

// insert overwrites whatever entry currently occupies (a, b)'s slot.
func (t *ComputeTable) insert(a, b Edge, result cachedEdge) {
	t.slots[hashEdgePair(a, b)] = computeEntry{valid: true, left: a, right: b, result: result}
}

// clear nullifies every slot. Called on every garbage-collect pass
// (freed nodes may still be referenced by stale entries) and on
// explicit reset.
func (t *ComputeTable) clear() {
	for i := range t.slots {
		t.slots[i] = computeEntry{}
	}
}
