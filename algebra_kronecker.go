package qdd

// KroneckerVector computes the Kronecker (tensor) product of two state
// vector diagrams.
func (p *Package) KroneckerVector(x, y Edge) Edge {
	return p.kroneckerTop(x, y, false, p.vectorKronecker)
}

// KroneckerMatrix computes the Kronecker product of two operator
// matrix diagrams.
func (p *Package) KroneckerMatrix(x, y Edge) Edge {
	return p.kroneckerTop(x, y, true, p.matrixKronecker)
}

func (p *Package) kroneckerTop(x, y Edge, isMatrix bool, table *ComputeTable) Edge {
	result := p.kronecker2(x, y, isMatrix, table)
	if !isZeroEdge(p.complex, result) {
		interned := p.complex.lookup(result.Weight)
		p.complex.releaseCached(result.Weight)
		result.Weight = interned
	}
	return result
}

func (p *Package) kronecker2(x, y Edge, isMatrix bool, table *ComputeTable) Edge {
	cn := p.complex

	if isZeroEdge(cn, x) || isZeroEdge(cn, y) {
		return zeroEdge()
	}
	if x.Node == TerminalNode {
		return Edge{Node: y.Node, Weight: cn.mulCached(x.Weight, y.Weight)}
	}
	if isMatrix && p.unique.get(x.Node).ident {
		return p.wrapIdentityAbove(x, y)
	}

	keyX, keyY := p.keyEdge(x), p.keyEdge(y)
	if cached, hit := table.lookup(keyX, keyY); hit {
		return Edge{Node: cached.node, Weight: cn.getCachedValues(cached.weight.Re, cached.weight.Im)}
	}

	n := p.unique.get(x.Node)
	arity := n.arity()
	edges := make([]Edge, arity)
	for i := 0; i < arity; i++ {
		edges[i] = p.kronecker2(n.edges[i], y, isMatrix, table)
	}

	newLevel := p.levelOf(x.Node) + p.levelOf(y.Node) + 1
	built := p.makeDDNode(int32(newLevel), isMatrix, edges, true)
	scaled := cn.mulCached(built.Weight, x.Weight)
	cn.releaseCached(built.Weight)
	result := Edge{Node: built.Node, Weight: scaled}

	table.insert(keyX, keyY, cachedEdge{node: result.Node, weight: cn.asValue(result.Weight)})
	return result
}

// wrapIdentityAbove handles kronecker(I_n, y): rather than recursing
// through an identity subtree structurally, it wraps y directly in a
// chain of diagonal-only nodes spanning the height of x's identity
// block, each with weight ONE on both diagonal edges and the zero edge
// off-diagonal.
func (p *Package) wrapIdentityAbove(x, y Edge) Edge {
	cn := p.complex
	height := int(p.levelOf(x.Node)) + 1
	base := p.levelOf(y.Node) + 1

	wrapped := y
	for i := 0; i < height; i++ {
		edges := [4]Edge{
			{Node: wrapped.Node, Weight: oneWeight()}, zeroEdge(),
			zeroEdge(), {Node: wrapped.Node, Weight: oneWeight()},
		}
		wrapped = p.makeDDNode(base+int32(i), true, edges[:], false)
	}
	return Edge{Node: wrapped.Node, Weight: cn.mulCached(x.Weight, y.Weight)}
}
