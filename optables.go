package qdd

// controlEntry is a single control qubit in a Toffoli/gate cache key:
// its index and required polarity.
type controlEntry struct {
	qubit    int
	positive bool
}

// toffoliKey identifies a Toffoli-family gate DD by qubit count, its
// control set, and its target. Keys are compared by value; the
// controls string comes from ControlSet.key, which sorts by qubit
// index, so the same controls added in a different order give the same
// key.
type toffoliKey struct {
	nqubits  int
	target   int
	controls string // canonical encoding: qubit, then '+' or '-', then ','
}

const opCacheSlots = 1 << 12

type toffoliEntry struct {
	valid bool
	key   toffoliKey
	dd    Edge
}

// ToffoliTable is a direct-mapped cache from (qubit-count, control-set,
// target) to the previously built Toffoli-family gate diagram.
type ToffoliTable struct {
	slots [opCacheSlots]toffoliEntry
}

func newToffoliTable() *ToffoliTable { return &ToffoliTable{} }

func hashToffoliKey(k toffoliKey) int {
	h := uint32(k.nqubits)*2654435761 + uint32(k.target)*40503
	for i := 0; i < len(k.controls); i++ {
		h = h*31 + uint32(k.controls[i])
	}
	return int(h & (opCacheSlots - 1))
}

func (t *ToffoliTable) lookup(k toffoliKey) (Edge, bool) {
	e := &t.slots[hashToffoliKey(k)]
	if !e.valid || e.key != k {
		return Edge{}, false
	}
	return e.dd, true
}

func (t *ToffoliTable) insert(k toffoliKey, dd Edge) {
	t.slots[hashToffoliKey(k)] = toffoliEntry{valid: true, key: k, dd: dd}
}

func (t *ToffoliTable) clear() {
	for i := range t.slots {
		t.slots[i] = toffoliEntry{}
	}
}

// operationKey identifies a general single/multi-parameter gate DD by
// an operation identifier, its target, and its parameters, e.g. a
// rotation angle. Parameters are compared exactly as float64 values.
type operationKey struct {
	opID   string
	target int
	param1 float64
	param2 float64
}

type operationEntry struct {
	valid bool
	key   operationKey
	dd    Edge
}

// OperationTable is the general-gate counterpart to ToffoliTable.
type OperationTable struct {
	slots [opCacheSlots]operationEntry
}

func newOperationTable() *OperationTable { return &OperationTable{} }

func hashOperationKey(k operationKey) int {
	h := uint32(k.target) * 2654435761
	for i := 0; i < len(k.opID); i++ {
		h = h*31 + uint32(k.opID[i])
	}
	h += uint32(int64(k.param1*1e9)) * 40503
	h += uint32(int64(k.param2*1e9)) * 2246822519
	return int(h & (opCacheSlots - 1))
}

func (t *OperationTable) lookup(k operationKey) (Edge, bool) {
	e := &t.slots[hashOperationKey(k)]
	if !e.valid || e.key != k {
		return Edge{}, false
	}
	return e.dd, true
}

func (t *OperationTable) insert(k operationKey, dd Edge) {
	t.slots[hashOperationKey(k)] = operationEntry{valid: true, key: k, dd: dd}
}

func (t *OperationTable) clear() {
	for i := range t.slots {
		t.slots[i] = operationEntry{}
	}
}

// identityCache memoizes makeIdent results by qubit count, indexed by
// the most-significant qubit since the identity chain always starts
// from level 0.
type identityCache struct {
	entries map[int]Edge
}

func newIdentityCache() *identityCache {
	return &identityCache{entries: make(map[int]Edge)}
}

func (c *identityCache) lookup(msq int) (Edge, bool) {
	e, ok := c.entries[msq]
	return e, ok
}

func (c *identityCache) insert(msq int, dd Edge) {
	c.entries[msq] = dd
}

func (c *identityCache) clear() {
	c.entries = make(map[int]Edge)
}
