package qdd

// Transpose returns the transpose of a matrix diagram: children at
// off-diagonal positions (1, 2) are swapped at every level (in general,
// index RADIX*i+j swaps with RADIX*j+i), and the top weight is carried
// through unchanged.
func (p *Package) Transpose(a Edge) Edge {
	node := p.transposeNode(a.Node)
	return Edge{Node: node, Weight: a.Weight}
}

func (p *Package) transposeNode(id NodeID) NodeID {
	if id == TerminalNode {
		return TerminalNode
	}
	if cached, hit := p.matrixTranspose.lookup(id); hit {
		return cached
	}

	n := p.unique.get(id)
	var edges [NEDGE]Edge
	edges[0] = Edge{Node: p.transposeNode(n.edges[0].Node), Weight: n.edges[0].Weight}
	edges[3] = Edge{Node: p.transposeNode(n.edges[3].Node), Weight: n.edges[3].Weight}
	edges[1] = Edge{Node: p.transposeNode(n.edges[2].Node), Weight: n.edges[2].Weight}
	edges[2] = Edge{Node: p.transposeNode(n.edges[1].Node), Weight: n.edges[1].Weight}

	built := p.makeDDNode(n.level, true, edges[:], false)
	p.matrixTranspose.insert(id, built.Node)
	return built.Node
}

// ConjugateTranspose returns the conjugate transpose: Transpose, plus
// conjugating every edge weight (top weight included) along the way.
func (p *Package) ConjugateTranspose(a Edge) Edge {
	node := p.conjugateTransposeNode(a.Node)
	return Edge{Node: node, Weight: p.conjugateWeight(a.Weight)}
}

func (p *Package) conjugateWeight(c Complex) Complex {
	return Complex{R: c.R, I: c.I.flipSign()}
}

func (p *Package) conjugateTransposeNode(id NodeID) NodeID {
	if id == TerminalNode {
		return TerminalNode
	}
	if cached, hit := p.conjugateMatrixTranspose.lookup(id); hit {
		return cached
	}

	n := p.unique.get(id)
	var edges [NEDGE]Edge
	edges[0] = Edge{Node: p.conjugateTransposeNode(n.edges[0].Node), Weight: p.conjugateWeight(n.edges[0].Weight)}
	edges[3] = Edge{Node: p.conjugateTransposeNode(n.edges[3].Node), Weight: p.conjugateWeight(n.edges[3].Weight)}
	edges[1] = Edge{Node: p.conjugateTransposeNode(n.edges[2].Node), Weight: p.conjugateWeight(n.edges[2].Weight)}
	edges[2] = Edge{Node: p.conjugateTransposeNode(n.edges[1].Node), Weight: p.conjugateWeight(n.edges[1].Weight)}

	built := p.makeDDNode(n.level, true, edges[:], false)
	p.conjugateMatrixTranspose.insert(id, built.Node)
	return built.Node
}
