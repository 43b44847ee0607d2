package qdd

import "math"

// ComplexNumbers owns one ComplexTable plus a bounded scratch cache of
// magnitude-pair slots used for intermediate complex arithmetic inside
// the recursive algorithms. Slots are handed out and reclaimed through
// a free list keyed on slot identity, the same shape as the unique
// table's node free list (getNode/returnNode): releasing a slot returns
// exactly that slot to the pool regardless of what has been allocated
// or released since, so a live value's slot is never silently reused
// out from under it. A bare incrementing cursor cannot make that
// guarantee -- releasing an older slot while a younger one is still
// held would free the wrong end of the arena.
type ComplexNumbers struct {
	table     *ComplexTable
	cacheCap  int
	cache     []float64
	allocated []bool
	next      []int32 // free-list link per pair index; -1 terminates
	freeHead  int32   // -1 = no free slot
	nextFresh int32   // first pair index never yet allocated
	live      int
}

func newComplexNumbers(tolerance float64, cacheSize, magGCLimit int) *ComplexNumbers {
	pairs := cacheSize / 2
	next := make([]int32, pairs)
	for i := range next {
		next[i] = -1
	}
	return &ComplexNumbers{
		table:     newComplexTable(tolerance, magGCLimit),
		cacheCap:  cacheSize,
		cache:     make([]float64, cacheSize),
		allocated: make([]bool, pairs),
		next:      next,
		freeHead:  -1,
	}
}

// CacheCount returns the number of scratch slots currently checked out.
// Every public Package operation must leave this unchanged across the
// call.
func (cn *ComplexNumbers) CacheCount() int { return cn.live * 2 }

// resetCache empties every checked-out slot and free-list link, used by
// Package.Reset to return the scratch cache to its just-constructed
// state.
func (cn *ComplexNumbers) resetCache() {
	for i := range cn.allocated {
		cn.allocated[i] = false
		cn.next[i] = -1
	}
	cn.freeHead = -1
	cn.nextFresh = 0
	cn.live = 0
}

// allocPair reserves a pair index, preferring a freed slot over a
// never-used one so the live set stays compact.
func (cn *ComplexNumbers) allocPair() int32 {
	if cn.freeHead != -1 {
		idx := cn.freeHead
		cn.freeHead = cn.next[idx]
		cn.allocated[idx] = true
		cn.live++
		return idx
	}
	if int(cn.nextFresh) >= len(cn.allocated) {
		panic(ErrCacheExhausted)
	}
	idx := cn.nextFresh
	cn.nextFresh++
	cn.allocated[idx] = true
	cn.live++
	return idx
}

// peekPair reports the pair index the next allocPair call would hand
// out, without reserving it.
func (cn *ComplexNumbers) peekPair() int32 {
	if cn.freeHead != -1 {
		return cn.freeHead
	}
	if int(cn.nextFresh) >= len(cn.allocated) {
		panic(ErrCacheExhausted)
	}
	return cn.nextFresh
}

func (cn *ComplexNumbers) val(r magRef) float64 {
	var v float64
	if r.scratch() {
		v = cn.cache[r.index()]
	} else {
		v = cn.table.entries[r.index()].value
	}
	if r.negative() {
		return -v
	}
	return v
}

func (cn *ComplexNumbers) setSlot(r magRef, unsignedValue float64) {
	if r.scratch() {
		cn.cache[r.index()] = unsignedValue
		return
	}
	// Interned entries are immutable once created; writing to one would
	// corrupt every node sharing it. Only scratch slots are mutated.
	panic("qdd: attempted in-place write to an interned magnitude")
}

// getCached allocates a fresh scratch slot pair (real, imaginary) and
// returns them as an unset (zero-valued) Complex.
func (cn *ComplexNumbers) getCached() Complex {
	idx := cn.allocPair()
	r := newMagRef(uint32(idx)*2, true, false)
	i := newMagRef(uint32(idx)*2+1, true, false)
	cn.cache[idx*2] = 0
	cn.cache[idx*2+1] = 0
	return Complex{R: r, I: i}
}

// getCachedValues allocates two fresh scratch slots preset to (re, im).
func (cn *ComplexNumbers) getCachedValues(re, im float64) Complex {
	c := cn.getCached()
	cn.setSlot(c.R, math.Abs(re))
	c.R = c.R.withSign(re < 0)
	cn.setSlot(c.I, math.Abs(im))
	c.I = c.I.withSign(im < 0)
	return c
}

// getTempCached hands back references to the pair the next allocPair
// call would reserve, without reserving it. The result is valid only
// until the next cache mutation (getCached, releaseCached, or another
// getTempCached); it is meant for a single immediate read/write within
// one expression.
func (cn *ComplexNumbers) getTempCached() Complex {
	idx := cn.peekPair()
	return Complex{
		R: newMagRef(uint32(idx)*2, true, false),
		I: newMagRef(uint32(idx)*2+1, true, false),
	}
}

// releaseCached returns a scratch Complex's slot pair to the free list.
// Because the free list is keyed on slot identity rather than a cursor
// position, a release is safe in any order relative to other live
// scratch values -- it always frees exactly the pair named by c, never
// a neighbor's. Releasing a pair that is not currently checked out
// (already released, or never allocated by this cache) is a bug in the
// caller and panics rather than silently corrupting the free list.
func (cn *ComplexNumbers) releaseCached(c Complex) {
	if !c.R.scratch() {
		return
	}
	idx := int32(c.R.index() / 2)
	if !cn.allocated[idx] {
		panic("qdd: releaseCached called on a scratch value that is not checked out")
	}
	cn.allocated[idx] = false
	cn.next[idx] = cn.freeHead
	cn.freeHead = idx
	cn.live--
}

// approxZero reports whether |c|^2 is below tolerance^2, for scratch and
// interned values alike, used by call sites that special-case ZERO
// without paying for an intern round-trip.
func (cn *ComplexNumbers) approxZero(c Complex) bool {
	tol := cn.table.tolerance
	re, im := cn.val(c.R), cn.val(c.I)
	return re*re+im*im < tol*tol
}

func (cn *ComplexNumbers) approxOne(c Complex) bool {
	tol := cn.table.tolerance
	re, im := cn.val(c.R)-1, cn.val(c.I)
	return re*re+im*im < tol*tol
}

func (cn *ComplexNumbers) normSq(c Complex) float64 {
	re, im := cn.val(c.R), cn.val(c.I)
	return re*re + im*im
}

// lookup interns a scratch (or already-interned) Complex, returning a
// Complex whose components are permanent ComplexTable references. This
// MUST be called before a value that started life as scratch is stored
// on a long-lived edge.
func (cn *ComplexNumbers) lookup(c Complex) Complex {
	return Complex{R: cn.internComponent(c.R), I: cn.internComponent(c.I)}
}

// lookupValues interns a raw (re, im) pair directly, without going
// through the scratch cache.
func (cn *ComplexNumbers) lookupValues(re, im float64) Complex {
	rIdx := cn.table.lookup(math.Abs(re))
	iIdx := cn.table.lookup(math.Abs(im))
	return Complex{
		R: newMagRef(rIdx, false, re < 0 && rIdx != zeroMagIndex),
		I: newMagRef(iIdx, false, im < 0 && iIdx != zeroMagIndex),
	}
}

func (cn *ComplexNumbers) internComponent(r magRef) magRef {
	v := cn.val(r)
	idx := cn.table.lookup(math.Abs(v))
	return newMagRef(idx, false, v < 0 && idx != zeroMagIndex)
}

// --- arithmetic -------------------------------------------------------
//
// add/sub/mul/div write their result into target's slots in place,
// avoiding an extra allocation for every intermediate value; the
// *Cached variants allocate a fresh scratch Complex first and are what
// recursive algorithm code actually calls.

func (cn *ComplexNumbers) add(target *Complex, a, b Complex) {
	re := cn.val(a.R) + cn.val(b.R)
	im := cn.val(a.I) + cn.val(b.I)
	cn.writeResult(target, re, im)
}

func (cn *ComplexNumbers) sub(target *Complex, a, b Complex) {
	re := cn.val(a.R) - cn.val(b.R)
	im := cn.val(a.I) - cn.val(b.I)
	cn.writeResult(target, re, im)
}

func (cn *ComplexNumbers) mul(target *Complex, a, b Complex) {
	ar, ai := cn.val(a.R), cn.val(a.I)
	br, bi := cn.val(b.R), cn.val(b.I)
	re := ar*br - ai*bi
	im := ar*bi + ai*br
	cn.writeResult(target, re, im)
}

func (cn *ComplexNumbers) div(target *Complex, a, b Complex) {
	ar, ai := cn.val(a.R), cn.val(a.I)
	br, bi := cn.val(b.R), cn.val(b.I)
	denom := br*br + bi*bi
	re := (ar*br + ai*bi) / denom
	im := (ai*br - ar*bi) / denom
	cn.writeResult(target, re, im)
}

// scale multiplies a by a real, non-negative factor in place, preserving
// phase. Used by normalization to factor a child weight's magnitude out
// to the parent edge.
func (cn *ComplexNumbers) scale(target *Complex, a Complex, factor float64) {
	re := cn.val(a.R) * factor
	im := cn.val(a.I) * factor
	cn.writeResult(target, re, im)
}

func (cn *ComplexNumbers) writeResult(target *Complex, re, im float64) {
	cn.setSlot(target.R, math.Abs(re))
	target.R = target.R.withSign(re < 0)
	cn.setSlot(target.I, math.Abs(im))
	target.I = target.I.withSign(im < 0)
}

func (cn *ComplexNumbers) addCached(a, b Complex) Complex {
	c := cn.getCached()
	cn.add(&c, a, b)
	return c
}

func (cn *ComplexNumbers) subCached(a, b Complex) Complex {
	c := cn.getCached()
	cn.sub(&c, a, b)
	return c
}

func (cn *ComplexNumbers) mulCached(a, b Complex) Complex {
	c := cn.getCached()
	cn.mul(&c, a, b)
	return c
}

func (cn *ComplexNumbers) divCached(a, b Complex) Complex {
	c := cn.getCached()
	cn.div(&c, a, b)
	return c
}

func (cn *ComplexNumbers) scaleCached(a Complex, factor float64) Complex {
	c := cn.getCached()
	cn.scale(&c, a, factor)
	return c
}

// asValue converts an interned or scratch Complex to a raw ComplexValue,
// the representation innerProduct returns.
func (cn *ComplexNumbers) asValue(c Complex) ComplexValue {
	return ComplexValue{Re: cn.val(c.R), Im: cn.val(c.I)}
}
