package qdd

// MultiplyMatrixVector computes x*y where x is an operator matrix
// diagram and y is a state vector diagram, returning a vector diagram.
func (p *Package) MultiplyMatrixVector(x, y Edge) Edge {
	return p.multiplyTop(x, y, false, p.matrixVectorMultiplication)
}

// MultiplyMatrixMatrix computes x*y where both are operator matrix
// diagrams, returning a matrix diagram.
func (p *Package) MultiplyMatrixMatrix(x, y Edge) Edge {
	return p.multiplyTop(x, y, true, p.matrixMultiplication)
}

func (p *Package) multiplyTop(x, y Edge, yIsMatrix bool, table *ComputeTable) Edge {
	result := p.multiply2(x, y, yIsMatrix, table)
	if !isZeroEdge(p.complex, result) {
		interned := p.complex.lookup(result.Weight)
		p.complex.releaseCached(result.Weight)
		result.Weight = interned
	}
	return result
}

// multiply2 is the shared matrix*vector / matrix*matrix skeleton: it
// walks the 2x2 block structure of x (always a matrix operand) against
// y's rows, summing products via add2 into each output block.
func (p *Package) multiply2(x, y Edge, yIsMatrix bool, table *ComputeTable) Edge {
	cn := p.complex

	if isZeroEdge(cn, x) || isZeroEdge(cn, y) {
		return zeroEdge()
	}

	w := maxLevel(p.levelOf(x.Node), p.levelOf(y.Node))
	if w == -1 {
		prod := cn.mulCached(x.Weight, y.Weight)
		if cn.approxZero(prod) {
			cn.releaseCached(prod)
			return zeroEdge()
		}
		return Edge{Node: TerminalNode, Weight: prod}
	}

	if xAtTop := x.Node != TerminalNode && p.levelOf(x.Node) == w; xAtTop && p.unique.get(x.Node).ident {
		return Edge{Node: y.Node, Weight: cn.mulCached(x.Weight, y.Weight)}
	}
	if yIsMatrix {
		if yAtTop := y.Node != TerminalNode && p.levelOf(y.Node) == w; yAtTop && p.unique.get(y.Node).ident {
			return Edge{Node: x.Node, Weight: cn.mulCached(x.Weight, y.Weight)}
		}
	}

	keyX, keyY := p.keyEdge(x), p.keyEdge(y)
	if cached, hit := table.lookup(keyX, keyY); hit {
		if cached.node == TerminalNode && cached.weight == (ComplexValue{}) {
			return zeroEdge()
		}
		return Edge{Node: cached.node, Weight: cn.getCachedValues(cached.weight.Re, cached.weight.Im)}
	}

	rows := RADIX
	cols := 1
	arity := RADIX
	addTable := p.vectorAdd
	if yIsMatrix {
		cols = RADIX
		arity = NEDGE
		addTable = p.matrixAdd
	}

	edges := make([]Edge, arity)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			sum := zeroEdge()
			for k := 0; k < RADIX; k++ {
				xi := p.descendOrSelf(x, w, RADIX*i+k)
				var yi Edge
				if yIsMatrix {
					yi = p.descendOrSelf(y, w, RADIX*k+j)
				} else {
					yi = p.descendOrSelf(y, w, k)
				}
				term := p.multiply2(xi, yi, yIsMatrix, table)
				next := p.add2(sum, term, yIsMatrix, addTable)
				cn.releaseCached(term.Weight)
				cn.releaseCached(yi.Weight)
				cn.releaseCached(xi.Weight)
				cn.releaseCached(sum.Weight)
				sum = next
			}
			edges[i*cols+j] = sum
		}
	}

	result := p.makeDDNode(w, yIsMatrix, edges, true)
	if isZeroEdge(cn, result) {
		table.insert(keyX, keyY, cachedEdge{})
	} else {
		table.insert(keyX, keyY, cachedEdge{node: result.Node, weight: cn.asValue(result.Weight)})
	}
	return result
}
