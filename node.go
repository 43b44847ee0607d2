package qdd

// NodeID is an arena index into a Package's node table. NodeID 0 is the
// singleton terminal, shared by every diagram the package builds, and
// -- following the same reuse trick the ComplexTable uses for its
// permanent zero/one entries -- also serves as the "no next node"
// sentinel for hash-chain and free-list links, since the terminal is
// never linked into either.
type NodeID uint32

// TerminalNode is the singleton leaf shared by all diagrams.
const TerminalNode NodeID = 0

// RADIX is the number of values a qubit takes (0 or 1): every vector
// node has RADIX outgoing edges.
const RADIX = 2

// NEDGE is the outgoing-edge count of a matrix node, RADIX*RADIX.
const NEDGE = 4

// Edge is a pair (node, complex weight). The root of a diagram is an
// Edge; the scalar value at an index path is the product of edge
// weights encountered walking that path down to the terminal.
type Edge struct {
	Node   NodeID
	Weight Complex
}

// node is one decision-diagram node. Vector nodes use edges[0:RADIX];
// matrix nodes use edges[0:NEDGE]. A single fixed-width array covers
// both variants rather than two node types, so the unique table and
// compute tables stay generic over node shape.
type node struct {
	level    int32 // -1 for the terminal
	isMatrix bool
	edges    [NEDGE]Edge
	refcount uint32
	frozen   bool

	// symm and ident are populated for matrix nodes only, at creation
	// time: symm iff both diagonal children are symm and the
	// off-diagonals are transposes of each other; ident iff both
	// diagonal edges carry weight ONE into identity children and both
	// off-diagonal edges are the canonical zero edge.
	symm  bool
	ident bool

	// next chains this node within its unique-table bucket while live,
	// or within the free list once returned.
	next NodeID
}

func (n *node) arity() int {
	if n.isMatrix {
		return NEDGE
	}
	return RADIX
}

// terminalNode returns the fixed contents of the singleton terminal.
// Both symm and ident are true, the identity element for the matrix
// annotations; the vector interpretation never consults either field.
func terminalNode() node {
	return node{level: -1, symm: true, ident: true, refcount: maxRefCount, frozen: true}
}

// zeroWeight is the canonical ZERO complex constant: (0, 0).
func zeroWeight() Complex {
	return Complex{R: newMagRef(zeroMagIndex, false, false), I: newMagRef(zeroMagIndex, false, false)}
}

// oneWeight is the canonical ONE complex constant: (1, 0), left behind
// as the internal weight of normalization's chosen argmax edge.
func oneWeight() Complex {
	return Complex{R: newMagRef(oneMagIndex, false, false), I: newMagRef(zeroMagIndex, false, false)}
}

// zeroEdge is the canonical edge representing an approximately-zero
// amplitude or coefficient: weight ZERO into the terminal.
func zeroEdge() Edge {
	return Edge{Node: TerminalNode, Weight: zeroWeight()}
}
