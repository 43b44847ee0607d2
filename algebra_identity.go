package qdd

// MakeIdentity builds the n-qubit identity matrix diagram: a chain of
// diagonal-only nodes each carrying weight ONE on both diagonal edges
// and the canonical zero edge off-diagonal, one node per level plus the
// terminal.
func (p *Package) MakeIdentity(nqubits int) Edge {
	if nqubits == 0 {
		return Edge{Node: TerminalNode, Weight: oneWeight()}
	}
	return p.makeIdent(0, nqubits-1)
}

// makeIdent builds the identity spanning qubit levels [lsq, msq].
// Results are memoized in the identity cache only for the full range
// starting at lsq=0, indexed by msq.
func (p *Package) makeIdent(lsq, msq int) Edge {
	if msq < lsq {
		return Edge{Node: TerminalNode, Weight: oneWeight()}
	}
	if lsq == 0 {
		if cached, hit := p.identities.lookup(msq); hit {
			return cached
		}
	}

	child := p.makeIdent(lsq, msq-1)
	edges := [NEDGE]Edge{
		{Node: child.Node, Weight: oneWeight()}, zeroEdge(),
		zeroEdge(), {Node: child.Node, Weight: oneWeight()},
	}
	built := p.makeDDNode(int32(msq), true, edges[:], false)

	if lsq == 0 {
		p.identities.insert(msq, built)
	}
	return built
}
