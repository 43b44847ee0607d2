package qdd

// ReduceAncillae zeroes out the rows/columns of a matrix diagram
// corresponding to qubits marked ancillary. In the regular form the
// [1] and [3] outgoing edges at each marked level are zeroed; in the
// transposed form [2] and [3] are zeroed instead.
func (p *Package) ReduceAncillae(a Edge, marks *QubitMask, regularForm bool) Edge {
	return clampWeight(p.complex, p.reduceAncillae2(a, marks, regularForm))
}

func (p *Package) reduceAncillae2(a Edge, marks *QubitMask, regularForm bool) Edge {
	if a.Node == TerminalNode {
		return a
	}
	cn := p.complex
	n := p.unique.get(a.Node)

	edges := make([]Edge, NEDGE)
	for i := 0; i < NEDGE; i++ {
		edges[i] = p.reduceAncillae2(n.edges[i], marks, regularForm)
	}
	if marks.IsMarked(int(n.level)) {
		if regularForm {
			edges[1], edges[3] = zeroEdge(), zeroEdge()
		} else {
			edges[2], edges[3] = zeroEdge(), zeroEdge()
		}
	}

	built := p.makeDDNode(n.level, true, edges, false)
	scaled := cn.mulCached(built.Weight, a.Weight)
	interned := cn.lookup(scaled)
	cn.releaseCached(scaled)
	return Edge{Node: built.Node, Weight: interned}
}

// ReduceGarbage collapses the amplitude of qubits marked garbage: at
// each marked level, the "1" branch is folded into the "0" branch by
// addition, and the "1" branch is zeroed.
func (p *Package) ReduceGarbage(a Edge, marks *QubitMask) Edge {
	return clampWeight(p.complex, p.reduceGarbage2(a, marks))
}

func (p *Package) reduceGarbage2(a Edge, marks *QubitMask) Edge {
	if a.Node == TerminalNode {
		return a
	}
	cn := p.complex
	n := p.unique.get(a.Node)

	e0 := p.reduceGarbage2(n.edges[0], marks)
	e1 := p.reduceGarbage2(n.edges[1], marks)

	var edges []Edge
	if marks.IsMarked(int(n.level)) {
		folded := p.add2(e0, e1, false, p.vectorAdd)
		internedFolded := cn.lookup(folded.Weight)
		if !isZeroEdge(cn, folded) {
			cn.releaseCached(folded.Weight)
		}
		edges = []Edge{{Node: folded.Node, Weight: internedFolded}, zeroEdge()}
	} else {
		edges = []Edge{e0, e1}
	}

	built := p.makeDDNode(n.level, false, edges, false)
	scaled := cn.mulCached(built.Weight, a.Weight)
	interned := cn.lookup(scaled)
	cn.releaseCached(scaled)
	return Edge{Node: built.Node, Weight: interned}
}

// clampWeight is a quick fix for accumulated rounding in
// reduceGarbage/reduceAncillae: if the resulting top-weight magnitude
// squared exceeds 1, it is forced to ONE rather than surfaced as an
// error.
func clampWeight(cn *ComplexNumbers, e Edge) Edge {
	if cn.normSq(e.Weight) > 1+cn.table.tolerance {
		return Edge{Node: e.Node, Weight: oneWeight()}
	}
	return e
}
