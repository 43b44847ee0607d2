package qdd

import "math"

// nbucket is the bucket count shared by the complex table and every
// per-level unique table, as specified.
const nbucket = 32768

const (
	// zeroMagIndex and oneMagIndex are the two permanently interned
	// magnitudes. Index 0 doubles as the "empty chain" / "no free slot"
	// sentinel for every hash bucket and free list in this package,
	// since a permanent entry is never linked into either -- the same
	// trick the BuDDy-derived node table uses, where node 0 is both a
	// terminal and the chain terminator.
	zeroMagIndex uint32 = 0
	oneMagIndex  uint32 = 1
)

// magEntry is one interned magnitude: its value, a reference count, and
// the intrusive link used both for the hash bucket it lives in and,
// once freed, for the free list.
type magEntry struct {
	value  float64
	refcnt uint32
	frozen bool // true once refcnt has saturated; inc/dec become no-ops
	next   uint32
}

const maxRefCount = ^uint32(0) - 1

// ComplexTable interns non-negative real magnitudes under a tolerance.
// Sign is carried externally via the magRef tag, never stored here.
type ComplexTable struct {
	tolerance float64
	entries   []magEntry
	buckets   [nbucket]uint32
	freeHead  uint32 // 0 = none

	gcLimit     int
	gcIncrement int

	hits, collisions uint64
}

func newComplexTable(tolerance float64, gcLimit int) *ComplexTable {
	t := &ComplexTable{
		tolerance:   tolerance,
		entries:     make([]magEntry, 2, 2048),
		gcLimit:     gcLimit,
		gcIncrement: gcLimit,
	}
	t.entries[zeroMagIndex] = magEntry{value: 0, refcnt: maxRefCount, frozen: true}
	t.entries[oneMagIndex] = magEntry{value: 1, refcnt: maxRefCount, frozen: true}

	// 1/2 and 1/√2 recur in every Hadamard-family gate and normalization
	// step; pre-intern and freeze them so they never bounce through the
	// free list under GC churn.
	for _, v := range [...]float64{0.5, invSqrt2} {
		idx := t.lookup(v)
		t.entries[idx].refcnt = maxRefCount
		t.entries[idx].frozen = true
	}
	return t
}

func (t *ComplexTable) hash(v float64) int {
	h := int(math.Floor(v * float64(nbucket-1)))
	if h < 0 {
		h = 0
	}
	if h >= nbucket {
		h = nbucket - 1
	}
	return h
}

func (t *ComplexTable) findInBucket(bucket int, v float64) uint32 {
	for idx := t.buckets[bucket]; idx != 0; idx = t.entries[idx].next {
		if math.Abs(t.entries[idx].value-v) < t.tolerance {
			t.hits++
			return idx
		}
		t.collisions++
	}
	return 0
}

// lookup interns a non-negative magnitude, returning the index of the
// (possibly newly created) entry. Values within tolerance of 0 or 1
// resolve to the permanent entries. Because a value near a bucket
// boundary can be within tolerance of an entry hashed into a
// neighbouring bucket, the buckets that v-tolerance and v+tolerance
// would hash to are also searched before a new entry is allocated.
func (t *ComplexTable) lookup(v float64) uint32 {
	if v < 0 {
		v = -v
	}
	if v < t.tolerance {
		return zeroMagIndex
	}
	if math.Abs(v-1) < t.tolerance {
		return oneMagIndex
	}

	primary := t.hash(v)
	if idx := t.findInBucket(primary, v); idx != 0 {
		return idx
	}
	if lo := t.hash(v - t.tolerance); lo != primary {
		if idx := t.findInBucket(lo, v); idx != 0 {
			return idx
		}
	}
	if hi := t.hash(v + t.tolerance); hi != primary {
		if idx := t.findInBucket(hi, v); idx != 0 {
			return idx
		}
	}

	idx := t.allocate(v)
	t.entries[idx].next = t.buckets[primary]
	t.buckets[primary] = idx
	return idx
}

func (t *ComplexTable) allocate(v float64) uint32 {
	if t.freeHead != 0 {
		idx := t.freeHead
		t.freeHead = t.entries[idx].next
		t.entries[idx] = magEntry{value: v}
		return idx
	}
	t.entries = append(t.entries, magEntry{value: v})
	return uint32(len(t.entries) - 1)
}

// incRef increments the reference count of the entry at idx. The
// permanent zero/one entries and any entry that has already saturated
// are frozen: further calls are no-ops.
func (t *ComplexTable) incRef(idx uint32) {
	if idx == zeroMagIndex || idx == oneMagIndex {
		return
	}
	e := &t.entries[idx]
	if e.frozen {
		return
	}
	if e.refcnt == maxRefCount {
		e.frozen = true
		return
	}
	e.refcnt++
}

// decRef decrements the reference count of the entry at idx.
// Decrementing a frozen (saturated) entry is a no-op: saturation is
// permanent, never reversed by further inc/dec traffic. Decrementing an
// entry already at zero is a precondition violation (asserted in debug).
func (t *ComplexTable) decRef(idx uint32) {
	if idx == zeroMagIndex || idx == oneMagIndex {
		return
	}
	e := &t.entries[idx]
	if e.frozen {
		return
	}
	if e.refcnt == 0 {
		panic("qdd: magnitude refcount underflow")
	}
	e.refcnt--
}

// garbageCollect returns every zero-refcount, non-permanent entry to the
// free list. It is a no-op unless force is set or the entry arena
// (live and free entries together) has grown to gcLimit. Afterward the
// limit adapts to how many live entries survived:
// it grows by gcIncrement when survivors exceed 90% of it (so a
// workload that keeps nearly everything alive isn't collected on every
// call), and shrinks by 8x once survivors drop below 1/16th of it
// (so a limit that ballooned during a transient spike comes back down),
// never below gcIncrement.
func (t *ComplexTable) garbageCollect(force bool) bool {
	if !force && len(t.entries) < t.gcLimit {
		return false
	}
	for b := 0; b < nbucket; b++ {
		prev := uint32(0)
		cur := t.buckets[b]
		for cur != 0 {
			next := t.entries[cur].next
			if cur > 1 && t.entries[cur].refcnt == 0 && !t.entries[cur].frozen {
				if prev == 0 {
					t.buckets[b] = next
				} else {
					t.entries[prev].next = next
				}
				t.entries[cur].next = t.freeHead
				t.freeHead = cur
			} else {
				prev = cur
			}
			cur = next
		}
	}

	survivors := t.liveCount()
	switch {
	case survivors > t.gcLimit*9/10:
		t.gcLimit += t.gcIncrement
	case survivors < t.gcLimit/16:
		t.gcLimit /= 8
		if t.gcLimit < t.gcIncrement {
			t.gcLimit = t.gcIncrement
		}
	}
	return true
}

// liveCount returns the number of entries not currently on the free
// list, i.e. the population garbageCollect's threshold tracks.
func (t *ComplexTable) liveCount() int {
	free := 0
	for cur := t.freeHead; cur != 0; cur = t.entries[cur].next {
		free++
	}
	return len(t.entries) - free
}

// clear resets statistics and buckets, keeping the two permanent entries
// but discarding every other interned magnitude.
func (t *ComplexTable) clear() {
	t.entries = t.entries[:2]
	t.freeHead = 0
	t.buckets = [nbucket]uint32{}
	t.hits, t.collisions = 0, 0
}
