// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

// minLevel returns the smallest of three levels, generalizing the source
// library's three-way min used to find the split variable of a recursion.
func minLevel(p, q, r int32) int32 {
	if p <= q {
		if p <= r {
			return p
		}
		return r
	}
	if q <= r {
		return q
	}
	return r
}

// Not returns the negation of n. With complement edges this never allocates
// and never touches the cache: it is the whole point of the representation.
func (m *Manager) Not(n Handle) Handle {
	if !n.valid() {
		return m.seterror(InvalidArg, "invalid operand in Not")
	}
	return n.Not()
}

// Ite computes the BDD for (f & g) | (!f & h), the if-then-else operator,
// canonicalizing operands before consulting the cache (spec.md §4.4.1).
func (m *Manager) Ite(f, g, h Handle) Handle {
	if !f.valid() || !g.valid() || !h.valid() {
		return m.seterror(InvalidArg, "invalid operand in Ite")
	}
	m.maybeAutoReorder()
	m.refstack = m.refstack[:0]
	m.pushref(f)
	m.pushref(g)
	m.pushref(h)
	res := m.ite(f, g, h)
	m.popref(3)
	return res
}

func (m *Manager) ite(f, g, h Handle) Handle {
	switch {
	case f == bddOne:
		return g
	case f == bddZero:
		return h
	case g == h:
		return g
	case f == g: // ITE(F,F,H) = ITE(F,1,H)
		g = bddOne
	case f == g.Not(): // ITE(F,!F,H) = ITE(F,0,H)
		g = bddZero
	}
	switch {
	case f == h: // ITE(F,G,F) = ITE(F,G,0)
		h = bddZero
	case f == h.Not(): // ITE(F,G,!F) = ITE(F,G,1)
		h = bddOne
	}
	if g == bddOne && h == bddZero {
		return f
	}
	if g == bddZero && h == bddOne {
		return f.Not()
	}

	compl := false
	if f.IsComplement() {
		f, g, h = f.Not(), h, g
	}
	if g.IsComplement() {
		g, h, compl = g.Not(), h.Not(), true
	}

	flvl, glvl, hlvl := m.level(f), m.level(g), m.level(h)
	v := minLevel(flvl, glvl, hlvl)

	// Shortcut: ITE(F,G,H) = UniqueInter(v,G,H) when F is exactly the
	// positive literal of v and v is strictly above G and H.
	if flvl < glvl && flvl < hlvl && f == m.ithvar[m.level2idx[flvl]] {
		r := m.UniqueInter(flvl, g, h)
		if compl {
			return r.Not()
		}
		return r
	}

	if res, ok := m.cache.lookup(cacheTag(famITE, 0, 0), f, g, h); ok {
		if compl {
			return res.Not()
		}
		return res
	}

	fLow, fHigh := cofactor(m, f, flvl, v)
	gLow, gHigh := cofactor(m, g, glvl, v)
	hLow, hHigh := cofactor(m, h, hlvl, v)

	low := m.pushref(m.ite(fLow, gLow, hLow))
	high := m.pushref(m.ite(fHigh, gHigh, hHigh))
	res := m.UniqueInter(v, high, low)
	m.popref(2)
	m.cache.insert(cacheTag(famITE, 0, 0), f, g, h, res)
	if compl {
		return res.Not()
	}
	return res
}

// cofactor returns n's (low, high) children at split level v: n's own
// children if n's variable sits at v, or (n, n) unchanged if n does not
// depend on v (n's variable is strictly below v in the order).
func cofactor(m *Manager, n Handle, nlvl, v int32) (Handle, Handle) {
	if nlvl == v {
		return m.Low(n), m.High(n)
	}
	return n, n
}

// Apply performs the ten binary Boolean operations described by Operator.
func (m *Manager) Apply(op Operator, left, right Handle) Handle {
	if !left.valid() || !right.valid() {
		return m.seterror(InvalidArg, "invalid operand in Apply %s", op)
	}
	if op >= opnot {
		return m.seterror(InvalidArg, "unauthorized operator %s in Apply", op)
	}
	m.maybeAutoReorder()
	m.refstack = m.refstack[:0]
	m.pushref(left)
	m.pushref(right)
	res := m.apply(op, left, right)
	m.popref(2)
	return res
}

func boolIndex(h Handle) int {
	if h == bddOne {
		return 1
	}
	return 0
}

func (m *Manager) apply(op Operator, left, right Handle) Handle {
	switch op {
	case OPand:
		switch {
		case left == right:
			return left
		case left == bddZero || right == bddZero:
			return bddZero
		case left == bddOne:
			return right
		case right == bddOne:
			return left
		}
	case OPor:
		switch {
		case left == right:
			return left
		case left == bddOne || right == bddOne:
			return bddOne
		case left == bddZero:
			return right
		case right == bddZero:
			return left
		}
	case OPxor:
		switch {
		case left == right:
			return bddZero
		case left == bddZero:
			return right
		case right == bddZero:
			return left
		case left == bddOne:
			return right.Not()
		case right == bddOne:
			return left.Not()
		}
	}

	if m.IsConst(left) && m.IsConst(right) {
		return m.From(opres[op][boolIndex(left)][boolIndex(right)] == 1)
	}

	tag := cacheTag(famApply, int32(op), 0)
	if res, ok := m.cache.lookup(tag, left, right, 0); ok {
		return res
	}

	llvl, rlvl := m.level(left), m.level(right)
	v := llvl
	if rlvl < v {
		v = rlvl
	}
	lLow, lHigh := cofactor(m, left, llvl, v)
	rLow, rHigh := cofactor(m, right, rlvl, v)

	low := m.pushref(m.apply(op, lLow, rLow))
	high := m.pushref(m.apply(op, lHigh, rHigh))
	res := m.UniqueInter(v, high, low)
	m.popref(2)
	return m.cache.insert(tag, left, right, 0, res)
}

// And, Or, Xor, Nand, Nor, Imp, Biimp, Diff, Less and InvImp are thin
// wrappers around Apply, named after the Boolean connective they compute.
func (m *Manager) And(f, g Handle) Handle    { return m.Apply(OPand, f, g) }
func (m *Manager) Or(f, g Handle) Handle     { return m.Apply(OPor, f, g) }
func (m *Manager) Xor(f, g Handle) Handle    { return m.Apply(OPxor, f, g) }
func (m *Manager) Nand(f, g Handle) Handle   { return m.Apply(OPnand, f, g) }
func (m *Manager) Nor(f, g Handle) Handle    { return m.Apply(OPnor, f, g) }
func (m *Manager) Imp(f, g Handle) Handle    { return m.Apply(OPimp, f, g) }
func (m *Manager) Biimp(f, g Handle) Handle  { return m.Apply(OPbiimp, f, g) }
func (m *Manager) Diff(f, g Handle) Handle   { return m.Apply(OPdiff, f, g) }
func (m *Manager) Less(f, g Handle) Handle   { return m.Apply(OPless, f, g) }
func (m *Manager) InvImp(f, g Handle) Handle { return m.Apply(OPinvimp, f, g) }

// AndN and OrN fold And/Or across a slice of handles, as a convenience for
// the common n-ary case (spec.md's cube/cover construction).
func (m *Manager) AndN(hs ...Handle) Handle {
	if len(hs) == 0 {
		return bddOne
	}
	res := hs[0]
	for _, h := range hs[1:] {
		res = m.And(res, h)
	}
	return res
}

func (m *Manager) OrN(hs ...Handle) Handle {
	if len(hs) == 0 {
		return bddZero
	}
	res := hs[0]
	for _, h := range hs[1:] {
		res = m.Or(res, h)
	}
	return res
}

// dontCare is the sentinel IteConstant/Leq return when the answer is not a
// constant (CUDD's DD_NON_CONSTANT).
const dontCare Handle = -2

// IteConstant computes Ite(f,g,h) the way Ite does, but returns dontCare
// instead of building any new node the moment the result is known not to be
// a constant - useful for callers that only care whether an expression is
// tautological or unsatisfiable.
func (m *Manager) IteConstant(f, g, h Handle) Handle {
	switch {
	case f == bddOne:
		return constOrDontCare(m, g)
	case f == bddZero:
		return constOrDontCare(m, h)
	case g == h:
		return constOrDontCare(m, g)
	}
	if f.IsComplement() {
		f, g, h = f.Not(), h, g
	}
	if g == bddOne && h == bddZero {
		return constOrDontCare(m, f)
	}
	if g == bddZero && h == bddOne {
		return constOrDontCare(m, f.Not())
	}
	flvl, glvl, hlvl := m.level(f), m.level(g), m.level(h)
	v := minLevel(flvl, glvl, hlvl)
	fLow, fHigh := cofactor(m, f, flvl, v)
	gLow, gHigh := cofactor(m, g, glvl, v)
	hLow, hHigh := cofactor(m, h, hlvl, v)
	t := m.IteConstant(fHigh, gHigh, hHigh)
	if t == dontCare {
		return dontCare
	}
	e := m.IteConstant(fLow, gLow, hLow)
	if e != t {
		return dontCare
	}
	return e
}

func constOrDontCare(m *Manager, h Handle) Handle {
	if m.IsConst(h) {
		return h
	}
	return dontCare
}

// Leq reports whether f implies g (f ≤ g in the Boolean lattice) without
// building any new node, per spec.md's constant-only short-circuit family.
func (m *Manager) Leq(f, g Handle) bool {
	return m.IteConstant(f, g, bddOne) == bddOne
}

// ExistAbstract existentially quantifies f over every variable in cube, a
// conjunction of positive literals built with Cube.
func (m *Manager) ExistAbstract(f, cube Handle) Handle {
	if !f.valid() || !cube.valid() {
		return m.seterror(InvalidArg, "invalid operand in ExistAbstract")
	}
	if err := m.checkMaxLive(); err != nil {
		return handleInvalid
	}
	if err := m.checkCube(cube); err != nil {
		return handleInvalid
	}
	if err := m.quantset2cache(cube); err != nil {
		return handleInvalid
	}
	m.maybeAutoReorder()
	m.refstack = m.refstack[:0]
	m.pushref(f)
	m.pushref(cube)
	res := m.exist(f)
	m.popref(2)
	return res
}

func (m *Manager) exist(f Handle) Handle {
	if m.IsConst(f) {
		return f
	}
	flvl := m.level(f)
	if flvl > m.cache.quantlast {
		return f
	}
	tag := cacheTag(famExist, 0, m.cache.quantsetID)
	if res, ok := m.cache.lookup(tag, f, 0, 0); ok {
		return res
	}
	low := m.pushref(m.exist(m.Low(f)))
	var res Handle
	if m.cache.quantset[flvl] == m.cache.quantsetID {
		high := m.pushref(m.exist(m.High(f)))
		res = m.or(low, high)
		m.popref(2)
	} else {
		high := m.pushref(m.exist(m.High(f)))
		res = m.UniqueInter(flvl, high, low)
		m.popref(2)
	}
	return m.cache.insert(tag, f, 0, 0, res)
}

func (m *Manager) or(f, g Handle) Handle { return m.apply(OPor, f, g) }

// UnivAbstract universally quantifies f over cube: ¬Exist(¬f, cube).
func (m *Manager) UnivAbstract(f, cube Handle) Handle {
	return m.Not(m.ExistAbstract(m.Not(f), cube))
}

// AppEx fuses Apply(op, left, right) with ExistAbstract(·, varset), avoiding
// the intermediate diagram Apply alone would build.
func (m *Manager) AppEx(op Operator, left, right, varset Handle) Handle {
	if !left.valid() || !right.valid() || !varset.valid() {
		return m.seterror(InvalidArg, "invalid operand in AppEx")
	}
	if op > OPnand {
		return m.seterror(InvalidArg, "operator %s not allowed in AppEx", op)
	}
	if err := m.checkCube(varset); err != nil {
		return handleInvalid
	}
	if err := m.quantset2cache(varset); err != nil {
		return handleInvalid
	}
	m.maybeAutoReorder()
	m.refstack = m.refstack[:0]
	m.pushref(left)
	m.pushref(right)
	m.pushref(varset)
	res := m.appex(op, left, right)
	m.popref(3)
	return res
}

func (m *Manager) appex(op Operator, left, right Handle) Handle {
	switch op {
	case OPand:
		if left == bddZero || right == bddZero {
			return bddZero
		}
		if left == right || left == bddOne {
			return m.exist(right)
		}
		if right == bddOne {
			return m.exist(left)
		}
	case OPor:
		if left == bddOne || right == bddOne {
			return bddOne
		}
		if left == right || left == bddZero {
			return m.exist(right)
		}
		if right == bddZero {
			return m.exist(left)
		}
	case OPxor:
		if left == right {
			return bddZero
		}
		if left == bddZero {
			return m.exist(right)
		}
		if right == bddZero {
			return m.exist(left)
		}
	}
	if m.IsConst(left) && m.IsConst(right) {
		return m.From(opres[op][boolIndex(left)][boolIndex(right)] == 1)
	}

	tag := cacheTag(famAppEx, int32(op), m.cache.quantsetID)
	if res, ok := m.cache.lookup(tag, left, right, 0); ok {
		return res
	}

	llvl, rlvl := m.level(left), m.level(right)
	v := llvl
	if rlvl < v {
		v = rlvl
	}
	lLow, lHigh := cofactor(m, left, llvl, v)
	rLow, rHigh := cofactor(m, right, rlvl, v)

	low := m.pushref(m.appex(op, lLow, rLow))
	var res Handle
	if m.cache.quantset[v] == m.cache.quantsetID {
		high := m.pushref(m.appex(op, lHigh, rHigh))
		res = m.or(low, high)
		m.popref(2)
	} else {
		high := m.pushref(m.appex(op, lHigh, rHigh))
		res = m.UniqueInter(v, high, low)
		m.popref(2)
	}
	return m.cache.insert(tag, left, right, 0, res)
}

// AndExist is the common AppEx(OPand, ...) specialization: the relational
// composition of left and right existentially quantified over varset.
func (m *Manager) AndExist(left, right, varset Handle) Handle {
	return m.AppEx(OPand, left, right, varset)
}

// checkCube validates that cube is a conjunction of positive literals: every
// node on its then-chain must have a bddZero else-child and a regular then
// child, and the chain must end at bddOne.
func (m *Manager) checkCube(cube Handle) error {
	for n := cube; n != bddOne; {
		if n.IsComplement() || m.IsConst(n) {
			return m.seterrorAsError(InvalidArg, "variable set is not a positive cube")
		}
		if m.Low(n) != bddZero {
			return m.seterrorAsError(InvalidArg, "variable set is not a positive cube")
		}
		n = m.High(n)
	}
	return nil
}

func (m *Manager) seterrorAsError(code ErrorCode, format string, a ...interface{}) error {
	m.seterror(code, format, a...)
	return m.err
}

// Cube builds the conjunction of the positive literals of every variable
// index in vars (spec.md's Makeset), the representation ExistAbstract and
// AppEx expect for their varset argument.
func (m *Manager) Cube(vars []int) Handle {
	res := bddOne
	for i := len(vars) - 1; i >= 0; i-- {
		res = m.And(m.Ithvar(vars[i]), res)
		if m.Errored() {
			return handleInvalid
		}
	}
	return res
}

// Scanset returns the variable indices cube scans, the dual of Cube.
func (m *Manager) Scanset(cube Handle) []int {
	var res []int
	for n := cube; n.index() > 1; n = m.High(n) {
		res = append(res, m.VarAt(int(m.level(n))))
	}
	return res
}

// Cofactor returns f restricted to xi = value (positive cofactor when value
// is true).
func (m *Manager) Cofactor(f Handle, xi int, value bool) Handle {
	lvl := m.Level(xi)
	return m.restrict(f, int32(lvl), value)
}

func (m *Manager) restrict(f Handle, lvl int32, value bool) Handle {
	if m.IsConst(f) {
		return f
	}
	flvl := m.level(f)
	if flvl > lvl {
		return f
	}
	if flvl == lvl {
		if value {
			return m.High(f)
		}
		return m.Low(f)
	}
	low := m.pushref(m.restrict(m.Low(f), lvl, value))
	high := m.pushref(m.restrict(m.High(f), lvl, value))
	res := m.UniqueInter(flvl, high, low)
	m.popref(2)
	return res
}

// BooleanDiff returns the Boolean difference of f with respect to variable
// xi: cofactor(f,xi=1) XOR cofactor(f,xi=0).
func (m *Manager) BooleanDiff(f Handle, xi int) Handle {
	pos := m.pushref(m.Cofactor(f, xi, true))
	neg := m.pushref(m.Cofactor(f, xi, false))
	// Xor resets the refstack and protects its own operands, so the two
	// cofactors are popped before handing them over.
	m.popref(2)
	return m.Xor(pos, neg)
}

// IsEssential reports whether f actually depends on variable xi, i.e.
// whether the two cofactors of f on xi differ (CUDD's cuddEssent.c notion of
// an essential/unate variable, exposed here as a single predicate rather
// than the full unate-variable-set sweep).
func (m *Manager) IsEssential(f Handle, xi int) bool {
	return m.BooleanDiff(f, xi) != m.False()
}
