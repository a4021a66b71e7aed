// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import "math"

// UniqueInter returns the canonical handle for an internal BDD/ADD node at
// the given level with the given then/else children, building a new arena
// slot only if no structurally identical node already exists (spec.md's U1
// canonicity invariant). The then child must be regular (U3); complement is
// carried entirely on the returned Handle and, recursively, on els.
func (m *Manager) UniqueInter(level int32, then, els Handle) Handle {
	if err := m.checkBudget(); err != nil {
		return handleInvalid
	}
	if then == els {
		return then
	}
	compl := then.IsComplement()
	if compl {
		then, els = then.Not(), els.Not()
	}
	h := m.findOrBuild(level, then, els)
	if !h.valid() {
		return handleInvalid
	}
	if compl {
		return h.Not()
	}
	return h
}

func (m *Manager) findOrBuild(level int32, then, els Handle) Handle {
	key := uniqueKey{level: level, then: then, els: els}
	if idx, ok := m.unique[key]; ok {
		return idx
	}
	idx, err := m.newBDDSlot(level, then, els)
	if err != nil {
		return handleInvalid
	}
	h := newHandle(idx, false)
	m.unique[key] = h
	return h
}

func (m *Manager) newBDDSlot(level int32, then, els Handle) (int, error) {
	if err := m.checkMaxLive(); err != nil {
		return 0, err
	}
	if m.freepos == 0 {
		m.gc()
		if (m.freenum*100)/len(m.nodes) <= m.gcResizeThreshold() {
			if err := m.bddresize(); err != nil {
				m.seterror(MemoryOut, "cannot grow BDD/ADD arena: %v", err)
				return 0, err
			}
		}
		if m.freepos == 0 {
			m.seterror(MemoryOut, "no free BDD/ADD node after garbage collection")
			return 0, errMemoryOut
		}
	}
	idx := int(m.freepos)
	m.freenum--
	m.produced++
	next := m.nodes[idx].next
	m.nodes[idx] = bddNode{kind: kindInternal, level: level, then: then, els: els}
	m.freepos = next
	return idx, nil
}

// UniqueConst returns the canonical handle for an ADD numeric leaf. Equality
// is bitwise (IEEE-754 bit pattern), the simplest sound reading of spec.md's
// "uniqueness modulo a small floating-point epsilon": values that are not
// bit-identical are treated as genuinely distinct leaves, so callers that
// want tolerance must round before calling UniqueConst.
func (m *Manager) UniqueConst(value float64) Handle {
	switch value {
	case addZero:
		return newHandle(0, false)
	case addOne:
		return newHandle(1, false)
	}
	key := math.Float64bits(value)
	if h, ok := m.constants[key]; ok {
		return h
	}
	idx, err := m.newBDDSlot(maxVar, handleInvalid, handleInvalid)
	if err != nil {
		return handleInvalid
	}
	m.nodes[idx].kind = kindConstant
	m.nodes[idx].value = value
	h := newHandle(idx, false)
	m.constants[key] = h
	return h
}

// UniqueInterZdd returns the canonical handle for a ZDD node, applying the
// elimination rule that distinguishes ZDD from BDD reduction: a node whose
// then-child is the ZDD empty-family constant is elided, returning its
// else-child directly (spec.md's Z1 invariant).
func (m *Manager) UniqueInterZdd(level int32, then, els Handle) Handle {
	if then == zddEmpty {
		return els
	}
	key := uniqueKey{level: level, then: then, els: els}
	if idx, ok := m.zunique[key]; ok {
		return idx
	}
	idx, err := m.newZDDSlot(level, then, els)
	if err != nil {
		return handleInvalid
	}
	h := newHandle(idx, false)
	m.zunique[key] = h
	return h
}

func (m *Manager) newZDDSlot(level int32, then, els Handle) (int, error) {
	if err := m.checkMaxLive(); err != nil {
		return 0, err
	}
	if m.zfreepos == 0 {
		m.zgc()
		if (m.zfreenum*100)/len(m.znodes) <= m.gcResizeThreshold() {
			if err := m.zddresize(); err != nil {
				m.seterror(MemoryOut, "cannot grow ZDD arena: %v", err)
				return 0, err
			}
		}
		if m.zfreepos == 0 {
			m.seterror(MemoryOut, "no free ZDD node after garbage collection")
			return 0, errMemoryOut
		}
	}
	idx := int(m.zfreepos)
	m.zfreenum--
	m.zproduced++
	next := m.znodes[idx].next
	m.znodes[idx] = zddNode{level: level, then: then, els: els}
	m.zfreepos = next
	return idx, nil
}

// reserveBDD builds the projection functions (literals) for the n BDD/ADD
// variables, one level per variable, levels running top-down in index order
// until reordering first permutes them.
func (m *Manager) reserveBDD(n int) error {
	m.varnum = int32(n)
	m.index2lvl = make([]int32, n)
	m.level2idx = make([]int32, n)
	m.ithvar = make([]Handle, n)
	m.nithvar = make([]Handle, n)
	for i := 0; i < n; i++ {
		m.index2lvl[i] = int32(i)
		m.level2idx[i] = int32(i)
	}
	for i := 0; i < n; i++ {
		pos := m.UniqueInter(int32(i), bddOne, bddZero)
		if !pos.valid() {
			return m.err
		}
		m.nodes[pos.index()].ref = maxRefCount
		m.ithvar[i] = pos
		m.nithvar[i] = pos.Not()
	}
	return nil
}

// reserveZDD builds the ZDD single-element families for the n ZDD variables.
func (m *Manager) reserveZDD(n int) error {
	m.zddvarnum = int32(n)
	m.zindex2lvl = make([]int32, n)
	m.zlevel2idx = make([]int32, n)
	m.zithvar = make([]Handle, n)
	if n == 0 {
		return nil
	}
	m.initZArena(2 * n)
	for i := 0; i < n; i++ {
		m.zindex2lvl[i] = int32(i)
		m.zlevel2idx[i] = int32(i)
	}
	// Each singleton family {{x_i}} is one node at level i whose then-child is
	// zddBase (the family containing only the empty set) and whose else-child
	// is zddEmpty; it does not depend on any other variable's node.
	for i := n - 1; i >= 0; i-- {
		pos := m.UniqueInterZdd(int32(i), zddBase, zddEmpty)
		if !pos.valid() {
			return m.err
		}
		m.znodes[pos.index()].ref = maxRefCount
		m.zithvar[i] = pos
	}
	return nil
}

func (m *Manager) initZArena(size int) {
	if size < 2 {
		size = 2
	}
	m.znodes = make([]zddNode, size)
	for k := range m.znodes {
		m.znodes[k] = zddNode{next: int32(k + 1)}
	}
	m.znodes[size-1].next = 0
	m.znodes[0] = zddNode{ref: maxRefCount} // zddEmpty, the empty family
	m.znodes[1] = zddNode{ref: maxRefCount} // zddBase, the family containing only the empty set
	m.zfreepos = 2
	m.zfreenum = size - 2
}

var (
	bddOne     = newHandle(1, false)
	bddZero    = newHandle(1, true)
	addOneH    = newHandle(1, false)
	addZeroH   = newHandle(0, false)
	zddEmpty   = newHandle(0, false)
	zddBase    = newHandle(1, false)
)
