// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import "math/big"

// ZUnion, ZIntersect and ZDiff are the three ZDD set operators: each walks
// two ZDD diagrams top-down in lockstep, recursing on the lower of the two
// top levels and combining at the UniqueInterZdd elimination boundary
// (spec.md §4.4.3's "elimination rule: then-child == ZDD zero => elide").
func (m *Manager) ZUnion(f, g Handle) Handle {
	m.refstack = m.refstack[:0]
	m.pushref(f)
	m.pushref(g)
	res := m.zunion(f, g)
	m.popref(2)
	return res
}

func (m *Manager) zunion(f, g Handle) Handle {
	switch {
	case f == zddEmpty:
		return g
	case g == zddEmpty:
		return f
	case f == g:
		return f
	}
	tag := cacheTag(famZUnion, 0, 0)
	if res, ok := m.cache.lookup(tag, f, g, 0); ok {
		return res
	}
	flvl, glvl := m.ZLevel(f), m.ZLevel(g)
	v := flvl
	if glvl < v {
		v = glvl
	}
	var res Handle
	switch {
	case flvl == glvl:
		then := m.pushref(m.zunion(m.ZHigh(f), m.ZHigh(g)))
		els := m.pushref(m.zunion(m.ZLow(f), m.ZLow(g)))
		res = m.UniqueInterZdd(v, then, els)
		m.popref(2)
	case flvl < glvl:
		els := m.pushref(m.zunion(m.ZLow(f), g))
		res = m.UniqueInterZdd(v, m.ZHigh(f), els)
		m.popref(1)
	default:
		els := m.pushref(m.zunion(f, m.ZLow(g)))
		res = m.UniqueInterZdd(v, m.ZHigh(g), els)
		m.popref(1)
	}
	return m.cache.insert(tag, f, g, 0, res)
}

func (m *Manager) ZIntersect(f, g Handle) Handle {
	m.refstack = m.refstack[:0]
	m.pushref(f)
	m.pushref(g)
	res := m.zintersect(f, g)
	m.popref(2)
	return res
}

func (m *Manager) zintersect(f, g Handle) Handle {
	switch {
	case f == zddEmpty || g == zddEmpty:
		return zddEmpty
	case f == g:
		return f
	}
	tag := cacheTag(famZIntersect, 0, 0)
	if res, ok := m.cache.lookup(tag, f, g, 0); ok {
		return res
	}
	flvl, glvl := m.ZLevel(f), m.ZLevel(g)
	var res Handle
	switch {
	case flvl == glvl:
		then := m.pushref(m.zintersect(m.ZHigh(f), m.ZHigh(g)))
		els := m.pushref(m.zintersect(m.ZLow(f), m.ZLow(g)))
		res = m.UniqueInterZdd(flvl, then, els)
		m.popref(2)
	case flvl < glvl:
		res = m.zintersect(m.ZLow(f), g)
	default:
		res = m.zintersect(f, m.ZLow(g))
	}
	return m.cache.insert(tag, f, g, 0, res)
}

func (m *Manager) ZDiff(f, g Handle) Handle {
	m.refstack = m.refstack[:0]
	m.pushref(f)
	m.pushref(g)
	res := m.zdiff(f, g)
	m.popref(2)
	return res
}

func (m *Manager) zdiff(f, g Handle) Handle {
	switch {
	case f == zddEmpty || f == g:
		return zddEmpty
	case g == zddEmpty:
		return f
	}
	tag := cacheTag(famZDiff, 0, 0)
	if res, ok := m.cache.lookup(tag, f, g, 0); ok {
		return res
	}
	flvl, glvl := m.ZLevel(f), m.ZLevel(g)
	var res Handle
	switch {
	case flvl == glvl:
		then := m.pushref(m.zdiff(m.ZHigh(f), m.ZHigh(g)))
		els := m.pushref(m.zdiff(m.ZLow(f), m.ZLow(g)))
		res = m.UniqueInterZdd(flvl, then, els)
		m.popref(2)
	case flvl < glvl:
		els := m.pushref(m.zdiff(m.ZLow(f), g))
		res = m.UniqueInterZdd(flvl, m.ZHigh(f), els)
		m.popref(1)
	default:
		res = m.zdiff(f, m.ZLow(g))
	}
	return m.cache.insert(tag, f, g, 0, res)
}

// ZCount returns the number of sets in the family f denotes, using big.Int
// since a ZDD of modest size can represent a family far larger than fits in
// a machine word (spec.md's minterm-count bookkeeping, generalized to ZDD
// set-counting).
func (m *Manager) ZCount(f Handle) *big.Int {
	seen := make(map[int]*big.Int)
	return m.zcount(f, seen)
}

func (m *Manager) zcount(f Handle, seen map[int]*big.Int) *big.Int {
	if f == zddEmpty {
		return big.NewInt(0)
	}
	if f == zddBase {
		return big.NewInt(1)
	}
	if v, ok := seen[f.index()]; ok {
		return v
	}
	res := new(big.Int).Add(m.zcount(m.ZHigh(f), seen), m.zcount(m.ZLow(f), seen))
	seen[f.index()] = res
	return res
}

// Cover arithmetic (Product, UnateProduct, WeakDiv, Divide) operates on ZDDs
// encoding sum-of-products covers. Product and WeakDiv/Divide pair up two
// ZDD variables per logical variable - a positive-literal variable at level
// 2*i and the matching negative-literal variable at level 2*i+1, always
// adjacent in the order - and three-way decompose a cover into the part
// where the positive literal appears (f1), the part where the negative
// literal appears (f0), and the part where the logical variable is absent
// (fd), mirroring CUDD's cuddZddGetCofactors3. UnateProduct instead treats
// each ZDD variable as one logical variable (no literal pairing).

// zddCofactor2 splits a cover at the negative-literal level of a logical
// variable into (present, absent) parts.
func (m *Manager) zddCofactor2(f Handle, negLvl int32) (f0, fd Handle) {
	if m.ZLevel(f) == negLvl {
		return m.ZHigh(f), m.ZLow(f)
	}
	return zddEmpty, f
}

// zddCofactor3 splits a cover at a logical variable's (posLvl, negLvl) pair
// into (positive-literal, negative-literal, neither) parts.
func (m *Manager) zddCofactor3(f Handle, posLvl, negLvl int32) (f1, f0, fd Handle) {
	switch m.ZLevel(f) {
	case posLvl:
		f1 = m.ZHigh(f)
		f0, fd = m.zddCofactor2(m.ZLow(f), negLvl)
	case negLvl:
		f1 = zddEmpty
		f0, fd = m.ZHigh(f), m.ZLow(f)
	default:
		f1, f0, fd = zddEmpty, zddEmpty, f
	}
	return
}

// ZProduct computes the cross-product of two covers f and g: every pair of
// cubes, one from each, conjoined and reduced (literals conflicting on the
// same variable kill a term).
func (m *Manager) ZProduct(f, g Handle) Handle {
	m.refstack = m.refstack[:0]
	m.pushref(f)
	m.pushref(g)
	res := m.zproduct(f, g)
	m.popref(2)
	return res
}

func (m *Manager) zproduct(f, g Handle) Handle {
	switch {
	case f == zddEmpty || g == zddEmpty:
		return zddEmpty
	case f == zddBase:
		return g
	case g == zddBase:
		return f
	}
	flvl, glvl := m.ZLevel(f), m.ZLevel(g)
	if flvl > glvl {
		f, g = g, f
		flvl, glvl = glvl, flvl
	}
	tag := cacheTag(famZProduct, 0, 0)
	if res, ok := m.cache.lookup(tag, f, g, 0); ok {
		return res
	}

	posLvl := flvl &^ 1 // round down to the positive-literal level of this pair
	negLvl := posLvl + 1

	f1, f0, fd := m.zddCofactor3(f, posLvl, negLvl)
	g1, g0, gd := m.zddCofactor3(g, posLvl, negLvl)
	f1, f0, fd = m.pushref(f1), m.pushref(f0), m.pushref(fd)
	g1, g0, gd = m.pushref(g1), m.pushref(g0), m.pushref(gd)

	rd := m.pushref(m.zproduct(fd, gd))
	t1 := m.pushref(m.zproduct(f0, g0))
	t2 := m.pushref(m.zproduct(f0, gd))
	t3 := m.pushref(m.zproduct(fd, g0))
	tmp := m.pushref(m.zunion(t1, t2))
	r0 := m.pushref(m.zunion(tmp, t3))
	n0 := m.pushref(m.UniqueInterZdd(negLvl, r0, rd))

	u1 := m.pushref(m.zproduct(f1, g1))
	u2 := m.pushref(m.zproduct(f1, gd))
	u3 := m.pushref(m.zproduct(fd, g1))
	utmp := m.pushref(m.zunion(u1, u2))
	r1 := m.pushref(m.zunion(utmp, u3))
	res := m.UniqueInterZdd(posLvl, r1, n0)
	m.popref(18)
	return m.cache.insert(tag, f, g, 0, res)
}

// ZUnateProduct is Product's specialization for unate covers: one ZDD
// variable per logical variable rather than a positive/negative pair.
func (m *Manager) ZUnateProduct(f, g Handle) Handle {
	m.refstack = m.refstack[:0]
	m.pushref(f)
	m.pushref(g)
	res := m.zunateProduct(f, g)
	m.popref(2)
	return res
}

func (m *Manager) zunateProduct(f, g Handle) Handle {
	switch {
	case f == zddEmpty || g == zddEmpty:
		return zddEmpty
	case f == zddBase:
		return g
	case g == zddBase:
		return f
	}
	flvl, glvl := m.ZLevel(f), m.ZLevel(g)
	if flvl > glvl {
		f, g = g, f
		flvl, glvl = glvl, flvl
	}
	tag := cacheTag(famZUnateProduct, 0, 0)
	if res, ok := m.cache.lookup(tag, f, g, 0); ok {
		return res
	}
	f1, f0 := m.ZHigh(f), m.ZLow(f)
	var g1, g0 Handle
	if glvl == flvl {
		g1, g0 = m.ZHigh(g), m.ZLow(g)
	} else {
		g1, g0 = zddEmpty, g
	}
	f1, f0, g1, g0 = m.pushref(f1), m.pushref(f0), m.pushref(g1), m.pushref(g0)

	t1 := m.pushref(m.zunateProduct(f1, g1))
	t2 := m.pushref(m.zunateProduct(f1, g0))
	t3 := m.pushref(m.zunateProduct(f0, g1))
	then := m.pushref(m.zunion(m.pushref(m.zunion(t1, t2)), t3))
	els := m.pushref(m.zunateProduct(f0, g0))
	res := m.UniqueInterZdd(flvl, then, els)
	m.popref(10)
	return m.cache.insert(tag, f, g, 0, res)
}

// ZWeakDiv computes a superset-tolerant quotient of cover f by cover g: the
// sum of every term of f divided by every term of g, which over-approximates
// the exact quotient but is far cheaper to compute.
func (m *Manager) ZWeakDiv(f, g Handle) Handle {
	m.refstack = m.refstack[:0]
	m.pushref(f)
	m.pushref(g)
	res := m.zweakDiv(f, g)
	m.popref(2)
	return res
}

func (m *Manager) zweakDiv(f, g Handle) Handle {
	switch {
	case g == zddBase:
		return f
	case f == zddEmpty || g == zddEmpty:
		return zddEmpty
	}
	flvl, glvl := m.ZLevel(f), m.ZLevel(g)
	if flvl > glvl {
		return zddEmpty
	}
	tag := cacheTag(famZWeakDiv, 0, 0)
	if res, ok := m.cache.lookup(tag, f, g, 0); ok {
		return res
	}

	posLvl := flvl &^ 1
	negLvl := posLvl + 1
	f1, f0, fd := m.zddCofactor3(f, posLvl, negLvl)
	g1, g0, gd := m.zddCofactor3(g, posLvl, negLvl)
	f1, f0, fd = m.pushref(f1), m.pushref(f0), m.pushref(fd)
	g1, g0, gd = m.pushref(g1), m.pushref(g0), m.pushref(gd)

	var res Handle
	switch {
	case g1 != zddEmpty:
		q1 := m.pushref(m.zweakDiv(f1, g1))
		q0 := handleInvalid
		if g0 != zddEmpty {
			q0 = m.zweakDiv(f0, g0)
		}
		q0 = m.pushref(q0)
		res = m.zintersectMaybe(q1, q0)
		m.popref(2)
	case g0 != zddEmpty:
		res = m.zweakDiv(f0, g0)
	default:
		res = m.zweakDiv(fd, gd)
	}
	m.popref(6)
	return m.cache.insert(tag, f, g, 0, res)
}

// zintersectMaybe intersects a and b, treating an invalid (not-yet-computed)
// operand as the universal set, used when ZWeakDiv only has one side of the
// positive/negative split to combine.
func (m *Manager) zintersectMaybe(a, b Handle) Handle {
	if !a.valid() {
		return b
	}
	if !b.valid() {
		return a
	}
	return m.zintersect(a, b)
}

// ZDivide is the cover quotient of f by g: it computes q = WeakDiv(f,g) and
// returns q when every cube of q*g is also a cube of f, and the empty cover
// otherwise. Quotient terms are not filtered one by one (spec.md's "Divide"
// over "WeakDiv").
func (m *Manager) ZDivide(f, g Handle) Handle {
	q := m.ZWeakDiv(f, g)
	if q == zddEmpty {
		return zddEmpty
	}
	check := m.ZUnion(m.ZProduct(q, g), zddEmpty)
	if m.isSubsetCover(check, f) {
		return q
	}
	return zddEmpty
}

// isSubsetCover reports whether every cube of a is also a cube of b, used by
// ZDivide's exactness check.
func (m *Manager) isSubsetCover(a, b Handle) bool {
	return m.zdiff(a, b) == zddEmpty
}
