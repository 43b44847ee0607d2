package qdd

// InnerProduct computes <x|y> for two state vector diagrams, returning
// a raw complex value (not interned): the result is a one-off scalar,
// never stored on an edge.
func (p *Package) InnerProduct(x, y Edge) ComplexValue {
	raw := p.innerProduct2(x.Node, y.Node)
	xw := p.complex.asValue(x.Weight).conj()
	yw := p.complex.asValue(y.Weight)
	return xw.mul(yw).mul(raw)
}

// Fidelity returns |<x|y>|^2.
func (p *Package) Fidelity(x, y Edge) float64 {
	return p.InnerProduct(x, y).normSq()
}

// innerProduct2 recurses structurally on a pair of nodes, weight
// contributions handled per edge as it descends, and memoizes on the
// bare node pair (wrapped as ONE-weighted edges, so the existing
// ComputeTable machinery keyed on edges can be reused for a
// weight-independent lookup).
func (p *Package) innerProduct2(x, y NodeID) ComplexValue {
	if x == TerminalNode || y == TerminalNode {
		if x == TerminalNode && y == TerminalNode {
			return ComplexValue{Re: 1}
		}
		return ComplexValue{}
	}

	key1 := Edge{Node: x, Weight: oneWeight()}
	key2 := Edge{Node: y, Weight: oneWeight()}
	if cached, hit := p.vectorInnerProduct.lookup(key1, key2); hit {
		return cached.weight
	}

	nx, ny := p.unique.get(x), p.unique.get(y)
	arity := nx.arity()

	var sum ComplexValue
	for i := 0; i < arity; i++ {
		cx, cy := nx.edges[i], ny.edges[i]
		childVal := p.innerProduct2(cx.Node, cy.Node)
		wx := p.complex.asValue(cx.Weight).conj()
		wy := p.complex.asValue(cy.Weight)
		sum = sum.add(wx.mul(wy).mul(childVal))
	}

	p.vectorInnerProduct.insert(key1, key2, cachedEdge{weight: sum})
	return sum
}
