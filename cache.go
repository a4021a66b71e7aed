// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import "math"

// cacheFamily distinguishes which recursive operator populated a cache
// entry; folded into the entry's tag together with an operator-specific
// sub-id (the Operator/AddOperator value, or a generation id for
// Replace/Exist/AppEx so that a change of substitution/variable-set
// invalidates old entries without a full cache reset).
type cacheFamily int32

const (
	famITE cacheFamily = iota
	famApply
	famAddApply
	famNot
	famExist
	famAppEx
	famReplace
	famZUnion
	famZIntersect
	famZDiff
	famZProduct
	famZUnateProduct
	famZWeakDiv
	famZDivide
)

// cacheTag packs a family, an operator selector (e.g. Operator or
// AddOperator, 0 if not applicable) and a generation id (e.g. a quantset or
// replace id, 0 if not applicable) into one key, wide enough that a
// generation counter growing past a few hundred calls can never bleed into
// the family or operator bits.
func cacheTag(fam cacheFamily, op, gen int32) int64 {
	return int64(fam)<<48 | int64(uint32(op))<<32 | int64(uint32(gen))
}

// cacheEntry is one slot of the computed cache: an operator-tag plus up to
// three operand handles, direct-mapped (no chaining - a collision simply
// evicts the previous occupant, per spec.md's cache design note).
type cacheEntry struct {
	tag   int64
	a     Handle
	b     Handle
	c     Handle
	res   Handle
	valid bool
}

type computedCache struct {
	table     []cacheEntry
	ratio     int
	hitresize int // hit-ratio threshold (%) at or above which maybeGrow doubles the table
	hits      int64
	misses    int64

	quantset   []int32
	quantsetID int32
	quantlast  int32
}

func (m *Manager) cacheinit(c *configs) {
	size := 10000
	if c.cachesize != 0 {
		size = c.cachesize
	}
	size = primeGte(size)
	m.cache = &computedCache{
		table:     make([]cacheEntry, size),
		ratio:     c.cacheratio,
		hitresize: c.cachehitresize,
	}
	m.cache.quantset = make([]int32, m.varnum)
}

func (cc *computedCache) index(tag int64, a, b, c Handle) int {
	size := len(cc.table)
	base := tripleHash(int(a), int(b), int(c), size)
	return pairHash(int(tag>>32), pairHash(int(int32(tag)), base, size), size)
}

func (cc *computedCache) lookup(tag int64, a, b, c Handle) (Handle, bool) {
	e := &cc.table[cc.index(tag, a, b, c)]
	if e.valid && e.tag == tag && e.a == a && e.b == b && e.c == c {
		cc.hits++
		return e.res, true
	}
	cc.misses++
	return handleInvalid, false
}

func (cc *computedCache) insert(tag int64, a, b, c, res Handle) Handle {
	cc.table[cc.index(tag, a, b, c)] = cacheEntry{tag: tag, a: a, b: b, c: c, res: res, valid: true}
	return res
}

func (cc *computedCache) hitRatioPct() int {
	total := cc.hits + cc.misses
	if total == 0 {
		return 0
	}
	return int((cc.hits * 100) / total)
}

func (cc *computedCache) reset() {
	for i := range cc.table {
		cc.table[i].valid = false
	}
	cc.hits, cc.misses = 0, 0
}

// maybeGrow doubles the cache when its hit ratio is healthy enough that a
// bigger table (fewer collisions) would pay off, mirroring the source
// library's cachehitresize heuristic.
func (cc *computedCache) maybeGrow() {
	if cc.ratio <= 0 || cc.hitRatioPct() < cc.hitresize {
		return
	}
	size := primeGte(len(cc.table) * 2)
	if size <= len(cc.table) {
		return
	}
	cc.table = make([]cacheEntry, size)
	cc.hits, cc.misses = 0, 0
}

func (cc *computedCache) resize(nodesize int) {
	if cc.ratio <= 0 {
		return
	}
	size := primeGte((nodesize * cc.ratio) / 100)
	cc.table = make([]cacheEntry, size)
	cc.reset()
}

// quantset2cache marks every variable existentially quantified over in varset
// (a handle built the same way as a BDD cube, chained through its then-edges)
// with the cache's current generation id, so Exist/AppEx entries computed
// under a different variable set are never matched by mistake.
func (m *Manager) quantset2cache(varset Handle) error {
	cc := m.cache
	if varset == bddOne {
		// The empty cube: quantifying over no variable at all. Still bump
		// quantsetID so a stale Exist/AppEx cache entry computed under the
		// previous (non-empty) varset can never be mistaken for this one.
		cc.quantsetID++
		cc.quantlast = -1
		return nil
	}
	cc.quantsetID++
	if cc.quantsetID == math.MaxInt32 {
		cc.quantset = make([]int32, m.varnum)
		cc.quantsetID = 1
	}
	for n := varset; n.index() > 1; n = m.nodes[n.index()].then {
		lvl := m.nodes[n.index()].level
		cc.quantset[lvl] = cc.quantsetID
		cc.quantlast = lvl
	}
	return nil
}
