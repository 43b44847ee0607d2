package qdd

import "math"

// normalizeResult reports what makeDDNode should do with the edges it
// was given after normalize.go has rewritten their internal weights.
type normalizeResult struct {
	allZero   bool
	outWeight Complex // meaningless when allZero
}

// replaceApproxZero replaces any approximately-zero edge weight with
// the canonical zero edge, releasing a scratch weight back to the
// cache first if the edge held one.
func replaceApproxZero(cn *ComplexNumbers, edges []Edge, cached bool) {
	for i := range edges {
		if cn.approxZero(edges[i].Weight) {
			if cached && edges[i].Weight.R.scratch() {
				cn.releaseCached(edges[i].Weight)
			}
			edges[i] = zeroEdge()
		}
	}
}

func isZeroEdge(cn *ComplexNumbers, e Edge) bool {
	return e.Node == TerminalNode && cn.approxZero(e.Weight)
}

// normalizeVector implements the vector normalization rule: the sum of
// squared magnitudes of the two outgoing weights is renormalized to 1,
// with the largest-magnitude edge's weight factored out to become the
// node's outward (parent-facing) weight.
func normalizeVector(cn *ComplexNumbers, edges []Edge, cached bool) normalizeResult {
	replaceApproxZero(cn, edges, cached)

	nonZero := 0
	for _, e := range edges {
		if !isZeroEdge(cn, e) {
			nonZero++
		}
	}
	if nonZero == 0 {
		return normalizeResult{allZero: true}
	}

	argmax := -1
	var maxSq float64
	m := 0.0
	for i, e := range edges {
		sq := cn.normSq(e.Weight)
		m += sq
		if sq > maxSq {
			maxSq, argmax = sq, i
		}
	}

	d := maxSq
	scale := 1.0
	if d > 0 {
		scale = math.Sqrt(m / d)
	}

	outWeight := cn.scaleCached(edges[argmax].Weight, scale)

	for i := range edges {
		q := cn.divCached(edges[i].Weight, outWeight)
		if cached {
			cn.releaseCached(edges[i].Weight)
		}
		edges[i].Weight = cn.lookup(q)
		cn.releaseCached(q)
	}

	if !cached {
		interned := cn.lookup(outWeight)
		cn.releaseCached(outWeight)
		outWeight = interned
	}

	return normalizeResult{outWeight: outWeight}
}

// normalizeMatrix implements the matrix normalization rule: the
// largest-magnitude outgoing weight is factored out unchanged (no
// magnitude redistribution); that edge's internal weight becomes ONE.
func normalizeMatrix(cn *ComplexNumbers, edges []Edge, cached bool) normalizeResult {
	replaceApproxZero(cn, edges, cached)

	nonZero := 0
	for _, e := range edges {
		if !isZeroEdge(cn, e) {
			nonZero++
		}
	}
	if nonZero == 0 {
		return normalizeResult{allZero: true}
	}

	argmax := -1
	var maxSq float64
	for i, e := range edges {
		sq := cn.normSq(e.Weight)
		if sq > maxSq {
			maxSq, argmax = sq, i
		}
	}

	outWeight := edges[argmax].Weight

	for i := range edges {
		if i == argmax {
			edges[i].Weight = oneWeight()
			continue
		}
		if isZeroEdge(cn, edges[i]) {
			continue
		}
		q := cn.divCached(edges[i].Weight, outWeight)
		if cached {
			cn.releaseCached(edges[i].Weight)
		}
		edges[i].Weight = cn.lookup(q)
		cn.releaseCached(q)
	}

	if !cached {
		outWeight = cn.lookup(outWeight)
	}

	return normalizeResult{outWeight: outWeight}
}
