// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import "math"

// ref increments a node's external reference count (saturating at
// maxRefCount, which also pins constants and projection functions against
// reclamation forever).
func (m *Manager) ref(h Handle) {
	if !h.valid() || h.index() >= len(m.nodes) {
		return
	}
	n := &m.nodes[h.index()]
	if n.ref < maxRefCount {
		n.ref++
	}
}

func (m *Manager) deref(h Handle) {
	if !h.valid() || h.index() >= len(m.nodes) {
		return
	}
	n := &m.nodes[h.index()]
	if n.ref > 0 && n.ref < maxRefCount {
		n.ref--
		if n.ref == 0 {
			m.pushDeathRow(h.Regular())
		}
	}
}

// ZAddRef and ZDelRef are the ZDD-arena counterparts of AddRef/DelRef.
func (m *Manager) ZAddRef(h Handle) Handle {
	if h.valid() && h.index() < len(m.znodes) {
		n := &m.znodes[h.index()]
		if n.ref < maxRefCount {
			n.ref++
		}
	}
	return h
}

func (m *Manager) ZDelRef(h Handle) Handle {
	if h.valid() && h.index() < len(m.znodes) {
		n := &m.znodes[h.index()]
		if n.ref > 0 && n.ref < maxRefCount {
			n.ref--
			if n.ref == 0 {
				m.zpushDeathRow(h)
			}
		}
	}
	return h
}

// pushDeathRow and zpushDeathRow record a node that just reached a zero
// external refcount without reclaiming it immediately: pushDeathRow only
// flags it dead once the ring buffer wraps around and evicts it, and
// zpushDeathRow flags it at once. Neither frees a slot; that is left to the
// next gc/zgc, which reclaims every unreachable node whether or not it is
// still on death row. This mirrors spec.md's "deferred dereference"
// lifecycle note; the ring's length starts from deathRowMinDepth.
func (m *Manager) pushDeathRow(h Handle) {
	prev := m.deathRow[m.deathHead]
	m.deathRow[m.deathHead] = h
	m.deathHead = (m.deathHead + 1) & m.deathMask
	if prev.valid() {
		m.finalizeDead(prev)
	}
}

func (m *Manager) finalizeDead(h Handle) {
	idx := h.index()
	if idx >= len(m.nodes) || m.nodes[idx].ref != 0 {
		return
	}
	m.nodes[idx].dead = true
}

func (m *Manager) zpushDeathRow(h Handle) {
	idx := h.index()
	if idx < len(m.znodes) && m.znodes[idx].ref == 0 {
		m.znodes[idx].dead = true
	}
}

// gc runs a mark-sweep garbage collection over the shared BDD/ADD arena.
// Live roots are every node with a positive refcount plus every handle
// currently pushed on the refstack (protecting the intermediate results of
// an in-flight recursive operator from being reclaimed out from under it).
func (m *Manager) gc() {
	if !m.runHooks(HookPreGC) {
		return
	}
	m.log.WithField("free", m.freenum).Debug("starting gc")
	m.metrics.gcCount.Inc()
	marked := make([]bool, len(m.nodes))
	for _, h := range m.refstack {
		m.markBDD(h, marked)
	}
	for i := range m.nodes {
		if m.nodes[i].ref > 0 || m.nodes[i].kind == kindConstant {
			m.markBDD(newHandle(i, false), marked)
		}
	}
	m.unique = make(map[uniqueKey]Handle, len(m.nodes))
	m.freepos = 0
	m.freenum = 0
	for i := len(m.nodes) - 1; i >= 2; i-- {
		n := &m.nodes[i]
		if marked[i] {
			if n.kind == kindInternal {
				m.unique[uniqueKey{level: n.level, then: n.then, els: n.els}] = newHandle(i, false)
			}
			continue
		}
		*n = bddNode{next: m.freepos}
		m.freepos = int32(i)
		m.freenum++
	}
	m.cache.maybeGrow()
	m.cache.reset()
	m.syncMetrics()
	m.log.WithField("free", m.freenum).Debug("gc done")
	m.runHooks(HookPostGC)
}

func (m *Manager) markBDD(h Handle, marked []bool) {
	idx := h.index()
	if idx < 2 || idx >= len(marked) || marked[idx] {
		return
	}
	marked[idx] = true
	n := m.nodes[idx]
	if n.kind != kindInternal {
		return
	}
	m.markBDD(n.then, marked)
	m.markBDD(n.els, marked)
}

// zgc is the ZDD-arena counterpart of gc.
func (m *Manager) zgc() {
	if !m.runHooks(HookPreGC) {
		return
	}
	m.metrics.gcCount.Inc()
	marked := make([]bool, len(m.znodes))
	for i := range m.znodes {
		if m.znodes[i].ref > 0 {
			m.markZDD(newHandle(i, false), marked)
		}
	}
	m.zunique = make(map[uniqueKey]Handle, len(m.znodes))
	m.zfreepos = 0
	m.zfreenum = 0
	for i := len(m.znodes) - 1; i >= 2; i-- {
		n := &m.znodes[i]
		if marked[i] {
			m.zunique[uniqueKey{level: n.level, then: n.then, els: n.els}] = newHandle(i, false)
			continue
		}
		*n = zddNode{next: m.zfreepos}
		m.zfreepos = int32(i)
		m.zfreenum++
	}
	m.syncMetrics()
	m.runHooks(HookPostGC)
}

func (m *Manager) markZDD(h Handle, marked []bool) {
	idx := h.index()
	if idx < 2 || idx >= len(marked) || marked[idx] {
		return
	}
	marked[idx] = true
	n := m.znodes[idx]
	m.markZDD(n.then, marked)
	m.markZDD(n.els, marked)
}

// pushref/popref protect a handle produced mid-recursion (and not yet
// referenced by any caller-visible root) from being collected if a nested
// allocation triggers a GC. Every recursive operator must push its operands
// before recursing and pop them once the recursive call returns.
func (m *Manager) pushref(h Handle) Handle {
	m.refstack = append(m.refstack, h)
	return h
}

func (m *Manager) popref(n int) {
	m.refstack = m.refstack[:len(m.refstack)-n]
}

// bddresize doubles the shared BDD/ADD arena, capped by maxnodesize and
// maxnodeincrease.
func (m *Manager) bddresize() error {
	oldsize := len(m.nodes)
	if m.maxnodesize > 0 && oldsize >= m.maxnodesize {
		return errMemoryOut
	}
	newsize := growSize(oldsize, m.maxnodesize, m.maxnodeincrease)
	if newsize <= oldsize {
		return errMemoryOut
	}
	grown := make([]bddNode, newsize)
	copy(grown, m.nodes)
	for i := oldsize; i < newsize; i++ {
		grown[i] = bddNode{next: int32(i + 1)}
	}
	grown[newsize-1].next = 0
	m.nodes = grown
	m.freepos = int32(oldsize)
	m.freenum += newsize - oldsize
	m.cache.resize(newsize)
	return nil
}

// zddresize is the ZDD-arena counterpart of bddresize.
func (m *Manager) zddresize() error {
	oldsize := len(m.znodes)
	newsize := growSize(oldsize, 0, m.maxnodeincrease)
	if newsize <= oldsize {
		return errMemoryOut
	}
	grown := make([]zddNode, newsize)
	copy(grown, m.znodes)
	for i := oldsize; i < newsize; i++ {
		grown[i] = zddNode{next: int32(i + 1)}
	}
	grown[newsize-1].next = 0
	m.znodes = grown
	m.zfreepos = int32(oldsize)
	m.zfreenum += newsize - oldsize
	return nil
}

func growSize(oldsize, maxsize, maxincrease int) int {
	newsize := oldsize
	if oldsize > (math.MaxInt32 >> 1) {
		newsize = math.MaxInt32 - 1
	} else {
		newsize = oldsize << 1
	}
	if maxincrease > 0 && newsize > oldsize+maxincrease {
		newsize = oldsize + maxincrease
	}
	if maxsize > 0 && newsize > maxsize {
		newsize = maxsize
	}
	return newsize
}
