package qdd

// levelTable is the per-variable-level hash-chained bucket array of the
// UniqueTable: one table per level, since structural-equality lookup is
// always scoped to a single level (siblings never share a level).
type levelTable struct {
	buckets [nbucket]NodeID
	count   int
}

// UniqueTable interns DD nodes per variable level so that structurally
// identical nodes are always the same NodeID, one table per level
// sharing a single underlying node arena, with reference counting that
// cascades to children.
type UniqueTable struct {
	nodes    []node
	levels   []levelTable // levels[v] for v in [0, nvars)
	freeHead NodeID       // 0 = none

	gcLimit     int
	gcIncrement int

	activeByLevel []int
	nodeCount     int
}

func newUniqueTable(nvars int, gcLimit int) *UniqueTable {
	ut := &UniqueTable{
		nodes:         make([]node, 1, 4096),
		levels:        make([]levelTable, nvars),
		gcLimit:       gcLimit,
		gcIncrement:   gcLimit,
		activeByLevel: make([]int, nvars),
	}
	ut.nodes[TerminalNode] = terminalNode()
	return ut
}

// resize grows the level-table slice to accommodate nvars variables,
// preserving existing levels. Shrinking is not supported: the caller
// (Package.Resize) rejects requests below the current variable count.
func (ut *UniqueTable) resize(nvars int) {
	if nvars <= len(ut.levels) {
		return
	}
	grown := make([]levelTable, nvars)
	copy(grown, ut.levels)
	ut.levels = grown

	grownActive := make([]int, nvars)
	copy(grownActive, ut.activeByLevel)
	ut.activeByLevel = grownActive
}

// hashEdges combines the outgoing edges of a candidate node into a
// bucket index by summing shifted per-edge contributions.
func hashEdges(edges []Edge) int {
	var h uint32
	for i, e := range edges {
		h += (uint32(e.Node) >> uint(i)) + (uint32(e.Weight.R) >> uint(i)) + (uint32(e.Weight.I) >> uint(i+1))
	}
	return int(h & (nbucket - 1))
}

func edgesEqual(a, b []Edge) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Node != b[i].Node || a[i].Weight != b[i].Weight {
			return false
		}
	}
	return true
}

// getNode pops a fresh node id from the free list, or grows the arena
// by ALLOCATION_SIZE=2000 nodes when the free list is empty.
func (ut *UniqueTable) getNode() NodeID {
	if ut.freeHead != TerminalNode {
		id := ut.freeHead
		ut.freeHead = ut.nodes[id].next
		ut.nodes[id] = node{}
		return id
	}
	const allocationSize = 2000
	base := len(ut.nodes)
	ut.nodes = append(ut.nodes, make([]node, allocationSize)...)
	for i := 1; i < allocationSize; i++ {
		id := NodeID(base + i)
		ut.nodes[id].next = ut.freeHead
		ut.freeHead = id
	}
	return NodeID(base)
}

// returnNode pushes id onto the free list.
func (ut *UniqueTable) returnNode(id NodeID) {
	ut.nodes[id] = node{next: ut.freeHead}
	ut.freeHead = id
}

func (ut *UniqueTable) get(id NodeID) *node { return &ut.nodes[id] }

// lookup interns the candidate node held at id (already populated with
// level, isMatrix and edges; symm/ident are filled in afterwards by
// makeDDNode) against the unique table at
// candidate.level. If a structurally identical node already exists,
// the candidate is returned to the free list (unless keepNode is set)
// and the existing NodeID is returned; otherwise the candidate is
// linked into its bucket and kept.
func (ut *UniqueTable) lookup(id NodeID, keepNode bool) NodeID {
	if id == TerminalNode {
		return id
	}
	n := &ut.nodes[id]
	lvl := &ut.levels[n.level]
	arity := n.arity()

	for cur := lvl.buckets[hashEdges(n.edges[:arity])]; cur != TerminalNode; cur = ut.nodes[cur].next {
		if edgesEqual(ut.nodes[cur].edges[:arity], n.edges[:arity]) {
			if cur != id && !keepNode {
				ut.returnNode(id)
			}
			return cur
		}
	}

	bucket := hashEdges(n.edges[:arity])
	n.next = lvl.buckets[bucket]
	lvl.buckets[bucket] = id
	lvl.count++
	ut.nodeCount++
	ut.activeByLevel[n.level]++
	return id
}

// incRef increments a node's refcount and, only on the 0->1 transition,
// recursively increments every child along with the two magnitude
// refcounts on each outgoing edge weight.
func (ut *UniqueTable) incRef(e Edge, mags *ComplexNumbers) {
	mags.table.incRef(e.Weight.R.index())
	mags.table.incRef(e.Weight.I.index())
	ut.incRefNode(e.Node, mags)
}

func (ut *UniqueTable) incRefNode(id NodeID, mags *ComplexNumbers) {
	if id == TerminalNode {
		return
	}
	n := &ut.nodes[id]
	if n.frozen {
		return
	}
	if n.refcount == maxRefCount {
		n.frozen = true
		return
	}
	n.refcount++
	if n.refcount != 1 {
		return
	}
	for i := 0; i < n.arity(); i++ {
		ut.incRef(n.edges[i], mags)
	}
}

// decRef mirrors incRef: only the 1->0 transition propagates to children.
func (ut *UniqueTable) decRef(e Edge, mags *ComplexNumbers) {
	mags.table.decRef(e.Weight.R.index())
	mags.table.decRef(e.Weight.I.index())
	ut.decRefNode(e.Node, mags)
}

func (ut *UniqueTable) decRefNode(id NodeID, mags *ComplexNumbers) {
	if id == TerminalNode {
		return
	}
	n := &ut.nodes[id]
	if n.frozen {
		return
	}
	if n.refcount == 0 {
		panic("qdd: node refcount underflow")
	}
	n.refcount--
	if n.refcount != 0 {
		return
	}
	for i := 0; i < n.arity(); i++ {
		ut.decRef(n.edges[i], mags)
	}
}

// garbageCollect walks every bucket of every level, returning
// zero-refcount nodes to the free list. No-op unless forced or
// nodeCount has crossed gcLimit; the limit then advances by
// gcIncrement.
func (ut *UniqueTable) garbageCollect(force bool) bool {
	if !force && ut.nodeCount < ut.gcLimit {
		return false
	}
	for v := range ut.levels {
		lvl := &ut.levels[v]
		for b := range lvl.buckets {
			prev := TerminalNode
			cur := lvl.buckets[b]
			for cur != TerminalNode {
				n := &ut.nodes[cur]
				next := n.next
				if n.refcount == 0 && !n.frozen {
					if prev == TerminalNode {
						lvl.buckets[b] = next
					} else {
						ut.nodes[prev].next = next
					}
					lvl.count--
					ut.nodeCount--
					ut.activeByLevel[v]--
					ut.returnNode(cur)
				} else {
					prev = cur
				}
				cur = next
			}
		}
	}
	ut.gcLimit += ut.gcIncrement
	return true
}

// clear returns every bucketed node to the free list and zeroes
// statistics and active counts, keeping the terminal and the
// already-allocated arena chunks.
func (ut *UniqueTable) clear() {
	for v := range ut.levels {
		lvl := &ut.levels[v]
		for b := range lvl.buckets {
			cur := lvl.buckets[b]
			for cur != TerminalNode {
				next := ut.nodes[cur].next
				ut.returnNode(cur)
				cur = next
			}
		}
		*lvl = levelTable{}
		ut.activeByLevel[v] = 0
	}
	ut.nodeCount = 0
}
