package qdd

// PartialTrace eliminates the qubits named by eliminate from a matrix
// diagram, replacing each eliminated level with the sum of its two
// diagonal children and reindexing the levels above it downward by the
// count of qubits already eliminated beneath them.
func (p *Package) PartialTrace(a Edge, eliminate *QubitMask) Edge {
	result, _ := p.partialTrace2(a, eliminate, 0)
	return result
}

// Trace returns the full trace of a matrix diagram: the sum of its
// diagonal entries, as a raw (uninterned) complex value.
func (p *Package) Trace(a Edge) ComplexValue {
	full := NewQubitMask(p.nqubits)
	for q := 0; q < p.nqubits; q++ {
		full.Mark(q)
	}
	traced := p.PartialTrace(a, full)
	return p.complex.asValue(traced.Weight)
}

func (p *Package) partialTrace2(a Edge, eliminate *QubitMask, eliminatedBelow int) (Edge, int) {
	cn := p.complex
	if a.Node == TerminalNode {
		return a, eliminatedBelow
	}

	n := p.unique.get(a.Node)
	level := int(n.level)

	if eliminate.IsMarked(level) {
		diag0 := Edge{Node: n.edges[0].Node, Weight: cn.mulCached(n.edges[0].Weight, a.Weight)}
		diag3 := Edge{Node: n.edges[3].Node, Weight: cn.mulCached(n.edges[3].Weight, a.Weight)}
		summed := p.add2(diag0, diag3, true, p.matrixAdd)
		cn.releaseCached(diag3.Weight)
		cn.releaseCached(diag0.Weight)
		result, deeper := p.partialTrace2(summed, eliminate, eliminatedBelow+1)
		if result.Node == TerminalNode {
			result.Weight = cn.lookup(result.Weight)
		}
		if !isZeroEdge(cn, summed) {
			cn.releaseCached(summed.Weight)
		}
		return result, deeper
	}

	edges := make([]Edge, NEDGE)
	deepest := eliminatedBelow
	for i := 0; i < NEDGE; i++ {
		child := n.edges[i]
		reduced, deeper := p.partialTrace2(child, eliminate, eliminatedBelow)
		edges[i] = reduced
		if deeper > deepest {
			deepest = deeper
		}
	}

	markedBeneath := 0
	for q := 0; q < level; q++ {
		if eliminate.IsMarked(q) {
			markedBeneath++
		}
	}
	newLevel := int32(level - markedBeneath)
	built := p.makeDDNode(newLevel, true, edges, false)
	scaled := cn.mulCached(built.Weight, a.Weight)
	interned := cn.lookup(scaled)
	cn.releaseCached(scaled)
	return Edge{Node: built.Node, Weight: interned}, deepest
}
