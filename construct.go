package qdd

// makeDDNode builds (or finds the existing canonical) node at the given
// level from a candidate set of outgoing edges, normalizes it, and
// returns the resulting edge. The node's internal weights are always
// interned. The returned edge's weight is scratch when cached is true,
// interned otherwise; with cached=true any scratch weights on the
// given edges are consumed (released) here. The add, multiply and
// kronecker recursions pass cached=true; every other builder passes
// cached=false.
func (p *Package) makeDDNode(level int32, isMatrix bool, edges []Edge, cached bool) Edge {
	id := p.unique.getNode()
	n := p.unique.get(id)
	n.level = level
	n.isMatrix = isMatrix
	copy(n.edges[:len(edges)], edges)

	var result normalizeResult
	if isMatrix {
		result = normalizeMatrix(p.complex, n.edges[:len(edges)], cached)
	} else {
		result = normalizeVector(p.complex, n.edges[:len(edges)], cached)
	}
	if result.allZero {
		p.unique.returnNode(id)
		return zeroEdge()
	}

	final := p.unique.lookup(id, false)
	if isMatrix {
		p.recomputeSymmIdent(final)
	}
	return Edge{Node: final, Weight: result.outWeight}
}

// recomputeSymmIdent fills in the symm/ident annotation of a matrix
// node from its (already canonical) children, run after insertion.
func (p *Package) recomputeSymmIdent(id NodeID) {
	n := p.unique.get(id)
	d0, d1 := n.edges[0], n.edges[3]
	off0, off1 := n.edges[1], n.edges[2]

	n.ident = weightIsOne(d0.Weight) && weightIsOne(d1.Weight) &&
		p.isIdentSubtree(d0.Node) && p.isIdentSubtree(d1.Node) &&
		isZeroEdge(p.complex, off0) && isZeroEdge(p.complex, off1)

	n.symm = p.isSymmSubtree(d0.Node) && p.isSymmSubtree(d1.Node) &&
		p.edgesAreTransposes(off0, off1)
}

func weightIsOne(c Complex) bool {
	return c.R.aligned().index() == oneMagIndex && !c.R.negative() && c.I.aligned().index() == zeroMagIndex
}

func (p *Package) isIdentSubtree(id NodeID) bool {
	if id == TerminalNode {
		return true
	}
	return p.unique.get(id).ident
}

func (p *Package) isSymmSubtree(id NodeID) bool {
	if id == TerminalNode {
		return true
	}
	return p.unique.get(id).symm
}

// edgesAreTransposes reports whether b is the structural transpose of a
// at the child level: same weight, and node b equals transpose(node a).
// Used only for the symm annotation; it calls Transpose, which reuses
// the unary compute table and builds the transposed node on a miss.
func (p *Package) edgesAreTransposes(a, b Edge) bool {
	if isZeroEdge(p.complex, a) && isZeroEdge(p.complex, b) {
		return true
	}
	t := p.Transpose(a)
	return t.Node == b.Node && t.Weight == b.Weight
}

// StateAmplitude names the six single-qubit basis states MakeBasisState
// accepts.
type StateAmplitude int

const (
	StateZero StateAmplitude = iota
	StateOne
	StatePlus
	StateMinus
	StatePlusI
	StateMinusI
)

// MakeZeroState builds |0...0> over n qubits: a chain of vector nodes
// each with edge 0 = ONE into the child and edge 1 = ZERO.
func (p *Package) MakeZeroState(n int) (Edge, error) {
	states := make([]StateAmplitude, n)
	return p.MakeBasisState(n, states)
}

// MakeBasisState builds a product state over n qubits from a per-qubit
// basis-state assignment, states[0] being qubit 0 (level 0).
func (p *Package) MakeBasisState(n int, states []StateAmplitude) (Edge, error) {
	if n > len(p.unique.levels) {
		return Edge{}, ErrCapacityExceeded
	}
	if len(states) != n {
		return Edge{}, ErrInvalidLevel
	}

	edge := Edge{Node: TerminalNode, Weight: oneWeight()}
	for level := 0; level < n; level++ {
		e0, e1 := stateEdges(p.complex, states[level], edge)
		edge = p.makeDDNode(int32(level), false, []Edge{e0, e1}, false)
		p.complex.releaseCached(e1.Weight)
		p.complex.releaseCached(e0.Weight)
	}
	return edge, nil
}

func stateEdges(cn *ComplexNumbers, s StateAmplitude, child Edge) (Edge, Edge) {
	sqrtHalf := cn.lookupValues(invSqrt2, 0)
	switch s {
	case StateZero:
		return Edge{Node: child.Node, Weight: child.Weight}, zeroEdge()
	case StateOne:
		return zeroEdge(), Edge{Node: child.Node, Weight: child.Weight}
	case StatePlus:
		return Edge{Node: child.Node, Weight: cn.mulCached(child.Weight, sqrtHalf)},
			Edge{Node: child.Node, Weight: cn.mulCached(child.Weight, sqrtHalf)}
	case StateMinus:
		return Edge{Node: child.Node, Weight: cn.mulCached(child.Weight, sqrtHalf)},
			Edge{Node: child.Node, Weight: cn.mulCached(child.Weight, cn.lookupValues(-invSqrt2, 0))}
	case StatePlusI:
		return Edge{Node: child.Node, Weight: cn.mulCached(child.Weight, sqrtHalf)},
			Edge{Node: child.Node, Weight: cn.mulCached(child.Weight, cn.lookupValues(0, invSqrt2))}
	case StateMinusI:
		return Edge{Node: child.Node, Weight: cn.mulCached(child.Weight, sqrtHalf)},
			Edge{Node: child.Node, Weight: cn.mulCached(child.Weight, cn.lookupValues(0, -invSqrt2))}
	default:
		return zeroEdge(), zeroEdge()
	}
}

const invSqrt2 = 0.70710678118654752440

// MakeGateDD builds an n-qubit matrix diagram applying the 2x2 gate mat
// (row-major) at target, controlled on controls. Levels below target
// wrap each of the four gate blocks individually, splicing an identity
// sub-diagram into the block a control's inactive branch selects;
// levels above target wrap the single diagram built so far the same
// way. A positive control routes the operator into the |1><1| block
// (edge index 3) and identity into |0><0| (edge index 0); a negative
// control does the reverse.
func (p *Package) MakeGateDD(mat [4]ComplexValue, n int, controls *ControlSet, target int) (Edge, error) {
	if target < 0 || target >= n {
		return Edge{}, ErrInvalidControls
	}
	if controls != nil && controls.Contains(target) {
		return Edge{}, ErrInvalidControls
	}

	var blocks [NEDGE]Edge
	for i, m := range mat {
		if m.Re == 0 && m.Im == 0 {
			blocks[i] = zeroEdge()
		} else {
			blocks[i] = Edge{Node: TerminalNode, Weight: p.complex.lookupValues(m.Re, m.Im)}
		}
	}

	for level := 0; level < target; level++ {
		isControl := controls != nil && controls.Contains(level)
		positive := isControl && controls.Polarity(level)
		ident := p.makeIdent(0, level-1)
		for i1 := 0; i1 < RADIX; i1++ {
			for i2 := 0; i2 < RADIX; i2++ {
				i := i1*RADIX + i2
				var edges [4]Edge
				switch {
				case isControl && positive:
					diag := zeroEdge()
					if i1 == i2 {
						diag = ident
					}
					edges = [4]Edge{diag, zeroEdge(), zeroEdge(), blocks[i]}
				case isControl:
					diag := zeroEdge()
					if i1 == i2 {
						diag = ident
					}
					edges = [4]Edge{blocks[i], zeroEdge(), zeroEdge(), diag}
				default:
					edges = [4]Edge{blocks[i], zeroEdge(), zeroEdge(), blocks[i]}
				}
				blocks[i] = p.makeDDNode(int32(level), true, edges[:], false)
			}
		}
	}

	edge := p.makeDDNode(int32(target), true, blocks[:], false)

	for level := target + 1; level < n; level++ {
		isControl := controls != nil && controls.Contains(level)
		positive := isControl && controls.Polarity(level)
		ident := p.makeIdent(0, level-1)
		var edges [4]Edge
		switch {
		case isControl && positive:
			edges = [4]Edge{ident, zeroEdge(), zeroEdge(), edge}
		case isControl:
			edges = [4]Edge{edge, zeroEdge(), zeroEdge(), ident}
		default:
			edges = [4]Edge{edge, zeroEdge(), zeroEdge(), edge}
		}
		edge = p.makeDDNode(int32(level), true, edges[:], false)
	}
	return edge, nil
}
