package qdd

// levelOf returns a node's variable level, treating the terminal as -1.
func (p *Package) levelOf(id NodeID) int32 {
	if id == TerminalNode {
		return -1
	}
	return p.unique.get(id).level
}

func maxLevel(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// AddVector adds two state-vector diagrams.
func (p *Package) AddVector(x, y Edge) Edge {
	return p.addTop(x, y, false, p.vectorAdd)
}

// AddMatrix adds two operator-matrix diagrams.
func (p *Package) AddMatrix(x, y Edge) Edge {
	return p.addTop(x, y, true, p.matrixAdd)
}

func (p *Package) addTop(x, y Edge, isMatrix bool, table *ComputeTable) Edge {
	result := p.add2(x, y, isMatrix, table)
	if !isZeroEdge(p.complex, result) {
		interned := p.complex.lookup(result.Weight)
		p.complex.releaseCached(result.Weight)
		result.Weight = interned
	}
	return result
}

// add2 is the shared vector/matrix addition skeleton: short-circuits on
// zero operands and identical nodes, consults the compute table, then
// recurses per outgoing edge and rebuilds via makeDDNode.
func (p *Package) add2(x, y Edge, isMatrix bool, table *ComputeTable) Edge {
	cn := p.complex

	if isZeroEdge(cn, x) {
		return Edge{Node: y.Node, Weight: cn.scaleCached(y.Weight, 1)}
	}
	if isZeroEdge(cn, y) {
		return Edge{Node: x.Node, Weight: cn.scaleCached(x.Weight, 1)}
	}
	if x.Node == y.Node {
		sum := cn.addCached(x.Weight, y.Weight)
		if cn.approxZero(sum) {
			cn.releaseCached(sum)
			return zeroEdge()
		}
		return Edge{Node: x.Node, Weight: sum}
	}

	keyX, keyY := p.keyEdge(x), p.keyEdge(y)
	if cached, hit := table.lookup(keyX, keyY); hit {
		return Edge{Node: cached.node, Weight: cn.getCachedValues(cached.weight.Re, cached.weight.Im)}
	}

	w := maxLevel(p.levelOf(x.Node), p.levelOf(y.Node))
	arity := RADIX
	if isMatrix {
		arity = NEDGE
	}

	edges := make([]Edge, arity)
	for i := 0; i < arity; i++ {
		e1 := p.descendOrSelf(x, w, i)
		e2 := p.descendOrSelf(y, w, i)
		edges[i] = p.add2(e1, e2, isMatrix, table)
		cn.releaseCached(e2.Weight)
		cn.releaseCached(e1.Weight)
	}

	result := p.makeDDNode(w, isMatrix, edges, true)
	table.insert(keyX, keyY, cachedEdge{node: result.Node, weight: cn.asValue(result.Weight)})
	return result
}

// keyEdge returns e with its weight interned, for use as a compute-table
// key. During recursion x/y typically carry a scratch weight, and a
// scratch magRef's index only identifies a stable value while that slot
// is checked out -- once released it is recycled for an unrelated
// value. A compute table persists across calls, so keying on the raw
// scratch magRef risks a later, unrelated value landing on the same
// freed index and reading back as a false hit. Interning first gives a
// key whose identity is as durable as the table entry itself.
func (p *Package) keyEdge(e Edge) Edge {
	return Edge{Node: e.Node, Weight: p.complex.lookup(e.Weight)}
}

// descendOrSelf returns the scratch-weighted child of x at index i if
// x's top level is exactly w, or a scratch copy of x itself otherwise
// (x does not depend on variable w, so it is reused unchanged on every
// branch of it).
func (p *Package) descendOrSelf(x Edge, w int32, i int) Edge {
	cn := p.complex
	if x.Node != TerminalNode && p.levelOf(x.Node) == w {
		child := p.unique.get(x.Node).edges[i]
		if isZeroEdge(cn, child) {
			return zeroEdge()
		}
		return Edge{Node: child.Node, Weight: cn.mulCached(child.Weight, x.Weight)}
	}
	return Edge{Node: x.Node, Weight: cn.scaleCached(x.Weight, 1)}
}
