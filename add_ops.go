// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import "math"

// AddApply recurses on the top-level variable of left/right, calling op's
// leaf rule whenever both operands are constants, and mirrors the BDD ITE
// recursion otherwise (spec.md §4.4.2). ADD leaves never carry a complement
// bit, so commutativity of operands is settled purely by level comparison,
// not by any sign-canonicalization trick.
func (m *Manager) AddApply(op AddOperator, left, right Handle) Handle {
	if !left.valid() || !right.valid() {
		return m.seterror(InvalidArg, "invalid operand in AddApply %s", op)
	}
	m.maybeAutoReorder()
	m.refstack = m.refstack[:0]
	m.pushref(left)
	m.pushref(right)
	res := m.addApply(op, left, right)
	m.popref(2)
	return res
}

func (m *Manager) addApply(op AddOperator, left, right Handle) Handle {
	if m.IsConst(left) && m.IsConst(right) {
		return m.UniqueConst(addLeaf(op, m.Value(left), m.Value(right)))
	}
	tag := cacheTag(famAddApply, int32(op), 0)
	if res, ok := m.cache.lookup(tag, left, right, 0); ok {
		return res
	}

	llvl, rlvl := m.level(left), m.level(right)
	v := llvl
	if rlvl < v {
		v = rlvl
	}
	lLow, lHigh := addCofactor(m, left, llvl, v)
	rLow, rHigh := addCofactor(m, right, rlvl, v)

	low := m.pushref(m.addApply(op, lLow, rLow))
	high := m.pushref(m.addApply(op, lHigh, rHigh))
	res := m.UniqueInter(v, high, low)
	m.popref(2)
	return m.cache.insert(tag, left, right, 0, res)
}

// addCofactor is cofactor's ADD-arena counterpart: ADD handles are never
// complemented, so there is no sign bookkeeping to thread through.
func addCofactor(m *Manager, n Handle, nlvl, v int32) (Handle, Handle) {
	if nlvl == v {
		return m.Low(n), m.High(n)
	}
	return n, n
}

// AddPlusOp, AddTimesOp, AddMinOp, AddMaxOp and AddThresholdOp are thin
// wrappers around AddApply, named after the AddOperator they apply.
func (m *Manager) AddPlusOp(f, g Handle) Handle      { return m.AddApply(AddPlus, f, g) }
func (m *Manager) AddTimesOp(f, g Handle) Handle     { return m.AddApply(AddTimes, f, g) }
func (m *Manager) AddMinOp(f, g Handle) Handle       { return m.AddApply(AddMin, f, g) }
func (m *Manager) AddMaxOp(f, g Handle) Handle       { return m.AddApply(AddMax, f, g) }
func (m *Manager) AddThresholdOp(f, g Handle) Handle { return m.AddApply(AddThreshold, f, g) }

// AddIte mirrors BDD Ite but over numeric constants: f must be a 0/1-valued
// ADD (the result of a threshold or comparison), selecting g where f is 1
// and h where f is 0 (spec.md's addIteRecur).
func (m *Manager) AddIte(f, g, h Handle) Handle {
	if !f.valid() || !g.valid() || !h.valid() {
		return m.seterror(InvalidArg, "invalid operand in AddIte")
	}
	m.maybeAutoReorder()
	m.refstack = m.refstack[:0]
	m.pushref(f)
	m.pushref(g)
	m.pushref(h)
	res := m.addIte(f, g, h)
	m.popref(3)
	return res
}

func (m *Manager) addIte(f, g, h Handle) Handle {
	// f's condition may be a plain BDD handle (Ithvar's own projection
	// function, complement edges and all) rather than an ADD-native leaf, so
	// the constant check goes through Value rather than raw equality against
	// addOneH/addZeroH: those two only ever equal a condition that happens to
	// carry zero ADD-side structure, whereas BDD false is the complement of
	// the shared "one" node and never raw-equals addZeroH.
	switch {
	case g == h:
		return g
	case m.IsConst(f):
		if m.Value(f) != 0 {
			return g
		}
		return h
	}
	tag := cacheTag(famAddApply, -1, 0)
	if res, ok := m.cache.lookup(tag, f, g, h); ok {
		return res
	}
	flvl, glvl, hlvl := m.level(f), m.level(g), m.level(h)
	v := minLevel(flvl, glvl, hlvl)
	fLow, fHigh := addCofactor(m, f, flvl, v)
	gLow, gHigh := addCofactor(m, g, glvl, v)
	hLow, hHigh := addCofactor(m, h, hlvl, v)

	low := m.pushref(m.addIte(fLow, gLow, hLow))
	high := m.pushref(m.addIte(fHigh, gHigh, hHigh))
	res := m.UniqueInter(v, high, low)
	m.popref(2)
	return m.cache.insert(tag, f, g, h, res)
}

// FindMax and FindMin walk an ADD's reachable leaves, returning the largest
// and smallest numeric value it takes (spec.md §8 S3's sanity-check
// surface), by caching on node index so shared sub-diagrams are scanned
// once.
func (m *Manager) FindMax(f Handle) float64 {
	seen := make(map[int]float64)
	return m.findExtreme(f, seen, true)
}

func (m *Manager) FindMin(f Handle) float64 {
	seen := make(map[int]float64)
	return m.findExtreme(f, seen, false)
}

func (m *Manager) findExtreme(f Handle, seen map[int]float64, max bool) float64 {
	if m.IsConst(f) {
		return m.Value(f)
	}
	if v, ok := seen[f.index()]; ok {
		return v
	}
	lo := m.findExtreme(m.Low(f), seen, max)
	hi := m.findExtreme(m.High(f), seen, max)
	res := lo
	if (max && hi > lo) || (!max && hi < lo) {
		res = hi
	}
	seen[f.index()] = res
	return res
}

// Compose substitutes variable index xi with the ADD/BDD g throughout f,
// rebuilding bottom-up via addIte (the ADD counterpart of the source
// library's Restrict/Replace family, generalized to a single-variable
// substitution rather than a whole permutation).
func (m *Manager) Compose(f Handle, xi int, g Handle) Handle {
	lvl := int32(m.Level(xi))
	seen := make(map[int]Handle)
	return m.compose(f, lvl, g, seen)
}

func (m *Manager) compose(f Handle, lvl int32, g Handle, seen map[int]Handle) Handle {
	if m.IsConst(f) {
		return f
	}
	flvl := m.level(f)
	if flvl > lvl {
		return f
	}
	if r, ok := seen[f.index()]; ok {
		return r
	}
	if flvl == lvl {
		res := m.addIte(g, m.High(f), m.Low(f))
		seen[f.index()] = res
		return res
	}
	low := m.pushref(m.compose(m.Low(f), lvl, g, seen))
	high := m.pushref(m.compose(m.High(f), lvl, g, seen))
	res := m.UniqueInter(flvl, high, low)
	m.popref(2)
	seen[f.index()] = res
	return res
}

// round is a helper for callers that want UniqueConst's bit-exact equality
// to treat nearby floats as the same leaf (spec.md's "uniqueness modulo a
// small floating-point epsilon" note on UniqueConst).
func round(v float64, epsilon float64) float64 {
	if epsilon <= 0 {
		return v
	}
	return math.Round(v/epsilon) * epsilon
}
