package qdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueTableSharesStructurallyIdenticalNodes(t *testing.T) {
	ut := newUniqueTable(4, 1000)

	build := func() NodeID {
		id := ut.getNode()
		n := ut.get(id)
		n.level = 0
		n.isMatrix = false
		n.edges[0] = Edge{Node: TerminalNode, Weight: oneWeight()}
		n.edges[1] = zeroEdge()
		return ut.lookup(id, false)
	}

	first := build()
	second := build()
	assert.Equal(t, first, second, "structurally identical nodes must share one NodeID")
	assert.Equal(t, 1, ut.nodeCount)
}

func TestUniqueTableRefcountCascades(t *testing.T) {
	ut := newUniqueTable(4, 1000)
	cn := newComplexNumbers(1e-9, 32, 1000)

	child := ut.getNode()
	cn2 := ut.get(child)
	cn2.level = 0
	cn2.edges[0] = Edge{Node: TerminalNode, Weight: oneWeight()}
	cn2.edges[1] = zeroEdge()
	childID := ut.lookup(child, false)

	parent := ut.getNode()
	pn := ut.get(parent)
	pn.level = 1
	pn.edges[0] = Edge{Node: childID, Weight: oneWeight()}
	pn.edges[1] = zeroEdge()
	parentID := ut.lookup(parent, false)

	edge := Edge{Node: parentID, Weight: oneWeight()}
	ut.incRef(edge, cn)
	require.Equal(t, uint32(1), ut.get(childID).refcount, "incRef on the parent must cascade to its child")

	ut.decRef(edge, cn)
	assert.Equal(t, uint32(0), ut.get(childID).refcount)
}

func TestUniqueTableClearReturnsNodesToFreeList(t *testing.T) {
	ut := newUniqueTable(2, 1000)
	id := ut.getNode()
	n := ut.get(id)
	n.level = 0
	n.edges[0] = Edge{Node: TerminalNode, Weight: oneWeight()}
	n.edges[1] = zeroEdge()
	ut.lookup(id, false)
	require.Equal(t, 1, ut.nodeCount)

	ut.clear()
	assert.Equal(t, 0, ut.nodeCount)
	assert.Equal(t, 0, ut.levels[0].count)

	reused := ut.getNode()
	assert.Equal(t, id, reused, "a node returned by clear must be reachable again from the free list")
}

func TestUniqueTableGarbageCollectReclaimsDeadNodes(t *testing.T) {
	ut := newUniqueTable(2, 1000)
	id := ut.getNode()
	n := ut.get(id)
	n.level = 0
	n.edges[0] = Edge{Node: TerminalNode, Weight: oneWeight()}
	n.edges[1] = zeroEdge()
	live := ut.lookup(id, false)
	require.Equal(t, uint32(0), ut.get(live).refcount)

	collected := ut.garbageCollect(true)
	assert.True(t, collected)
	assert.Equal(t, 0, ut.nodeCount)
}
