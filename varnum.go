// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

// Reserve grows the manager to exactly n BDD/ADD variables, appending the
// new ones at the bottom of the current order (spec.md §3's "Creation of new
// variables"). It is a no-op if n is not larger than the current count.
// Automatic reordering is disabled for the duration of the expansion since
// every new projection-function handle must exist before any sifting pass
// can safely move it.
func (m *Manager) Reserve(n int) error {
	if n <= int(m.varnum) {
		return nil
	}
	if n > int(maxVar) {
		m.seterror(InvalidArg, "cannot reserve %d BDD/ADD variables", n)
		return m.err
	}
	old := int(m.varnum)
	index2lvl := make([]int32, n)
	level2idx := make([]int32, n)
	ithvar := make([]Handle, n)
	nithvar := make([]Handle, n)
	copy(index2lvl, m.index2lvl)
	copy(level2idx, m.level2idx)
	copy(ithvar, m.ithvar)
	copy(nithvar, m.nithvar)
	m.index2lvl, m.level2idx, m.ithvar, m.nithvar = index2lvl, level2idx, ithvar, nithvar

	wasEnabled := m.reorderEnabled
	m.reorderEnabled = false
	for i := old; i < n; i++ {
		lvl := int32(i)
		m.level2idx[lvl] = int32(i)
		m.index2lvl[i] = lvl
		m.varnum = int32(i + 1)
		pos := m.UniqueInter(lvl, bddOne, bddZero)
		if !pos.valid() {
			m.reorderEnabled = wasEnabled
			return m.err
		}
		m.nodes[pos.index()].ref = maxRefCount
		m.ithvar[i] = pos
		m.nithvar[i] = pos.Not()
	}
	m.cache.quantset = make([]int32, m.varnum)
	m.cache.quantsetID = 0
	m.reorderEnabled = wasEnabled
	return nil
}

// ReserveZ is Reserve's ZDD-family counterpart.
func (m *Manager) ReserveZ(n int) error {
	if n <= int(m.zddvarnum) {
		return nil
	}
	if n > int(maxVar) {
		m.seterror(InvalidArg, "cannot reserve %d ZDD variables", n)
		return m.err
	}
	old := int(m.zddvarnum)
	if m.znodes == nil {
		m.initZArena(2*n + 2)
	}
	zindex2lvl := make([]int32, n)
	zlevel2idx := make([]int32, n)
	zithvar := make([]Handle, n)
	copy(zindex2lvl, m.zindex2lvl)
	copy(zlevel2idx, m.zlevel2idx)
	copy(zithvar, m.zithvar)
	m.zindex2lvl, m.zlevel2idx, m.zithvar = zindex2lvl, zlevel2idx, zithvar

	wasEnabled := m.reorderEnabled
	m.reorderEnabled = false
	// New variables are appended below the existing order (spec.md §3); each
	// new singleton family {{x_i}} is one node with then=zddBase and
	// else=zddEmpty.
	for i := n - 1; i >= 0; i-- {
		lvl := int32(i)
		m.zlevel2idx[lvl] = int32(i)
		m.zindex2lvl[i] = lvl
		if i >= old {
			pos := m.UniqueInterZdd(lvl, zddBase, zddEmpty)
			if !pos.valid() {
				m.reorderEnabled = wasEnabled
				return m.err
			}
			m.znodes[pos.index()].ref = maxRefCount
			m.zithvar[i] = pos
		}
	}
	m.zddvarnum = int32(n)
	m.reorderEnabled = wasEnabled
	return nil
}

// Ithvar returns the BDD/ADD projection function for variable index i,
// growing the manager on demand if i is past the current variable count.
func (m *Manager) Ithvar(i int) Handle {
	if i < 0 {
		return m.seterror(InvalidArg, "negative variable index %d", i)
	}
	if i >= int(m.varnum) {
		if err := m.Reserve(i + 1); err != nil {
			return handleInvalid
		}
	}
	return m.ithvar[i]
}

// NIthvar returns the negation of the i'th projection function.
func (m *Manager) NIthvar(i int) Handle {
	h := m.Ithvar(i)
	if !h.valid() {
		return handleInvalid
	}
	return m.nithvar[i]
}

// ZIthvar returns the ZDD singleton family {{x_i}} for variable index i.
func (m *Manager) ZIthvar(i int) Handle {
	if i < 0 {
		return m.seterror(InvalidArg, "negative ZDD variable index %d", i)
	}
	if i >= int(m.zddvarnum) {
		if err := m.ReserveZ(i + 1); err != nil {
			return handleInvalid
		}
	}
	return m.zithvar[i]
}

// Level returns the current order position of variable index i.
func (m *Manager) Level(i int) int { return int(m.index2lvl[i]) }

// VarAt returns the variable index currently sitting at order position lvl.
func (m *Manager) VarAt(lvl int) int { return int(m.level2idx[lvl]) }

// True returns the BDD constant true.
func (m *Manager) True() Handle { return bddOne }

// False returns the BDD constant false.
func (m *Manager) False() Handle { return bddZero }

// From returns the BDD constant corresponding to v.
func (m *Manager) From(v bool) Handle {
	if v {
		return bddOne
	}
	return bddZero
}

// AddConst returns the ADD leaf for value, interning it if needed.
func (m *Manager) AddConst(value float64) Handle { return m.UniqueConst(value) }

// ZEmpty returns the ZDD constant denoting the empty family of sets.
func (m *Manager) ZEmpty() Handle { return zddEmpty }

// ZBase returns the ZDD constant denoting the family containing only the
// empty set.
func (m *Manager) ZBase() Handle { return zddBase }

// level returns n's variable level (its position in the current order), or
// maxVar for a constant.
func (m *Manager) level(n Handle) int32 {
	return m.nodes[n.Regular().index()].level
}

// Low returns n's else child (for a BDD, the complement bit is threaded
// through correctly: Low(Not(n)) == Not(Low(n))).
func (m *Manager) Low(n Handle) Handle {
	node := m.nodes[n.Regular().index()]
	if n.IsComplement() {
		return node.els.Not()
	}
	return node.els
}

// High returns n's then child.
func (m *Manager) High(n Handle) Handle {
	node := m.nodes[n.Regular().index()]
	if n.IsComplement() {
		return node.then.Not()
	}
	return node.then
}

// IsConst reports whether n denotes a BDD/ADD constant.
func (m *Manager) IsConst(n Handle) bool {
	return m.nodes[n.Regular().index()].kind == kindConstant
}

// Value returns the numeric value of an ADD leaf (0.0/1.0 for a BDD leaf,
// honoring the complement bit).
func (m *Manager) Value(n Handle) float64 {
	node := m.nodes[n.Regular().index()]
	if n.IsComplement() {
		return 1.0 - node.value
	}
	return node.value
}

// ZLow and ZHigh are the ZDD-arena counterparts of Low/High.
func (m *Manager) ZLow(n Handle) Handle  { return m.znodes[n.index()].els }
func (m *Manager) ZHigh(n Handle) Handle { return m.znodes[n.index()].then }

// ZLevel returns n's ZDD level, or maxVar for a constant.
func (m *Manager) ZLevel(n Handle) int32 {
	if n.index() < 2 {
		return maxVar
	}
	return m.znodes[n.index()].level
}
