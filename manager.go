// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package dd implements a shared decision-diagram manager supporting
// Reduced Ordered Binary Decision Diagrams (BDD), Algebraic Decision
// Diagrams (ADD, numeric leaves) and Zero-suppressed Decision Diagrams
// (ZDD), all living in the graph owned by one Manager value.
//
// The design follows github.com/dalzilio/rudd's map-based unique table
// (itself modeled on BuDDy/CUDD): a Manager owns a node arena, a unique
// table enforcing structural canonicity, a computed/memoization cache, and
// a reference-counting node lifecycle with deferred dereference and
// mark-sweep garbage collection. BDD handles carry a complement edge; ADD and
// ZDD handles never do. A Manager is not safe for concurrent mutation: all
// operators are plain methods with no internal locking (spec.md §5).
package dd

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/sirupsen/logrus"
)

// HookPoint identifies one of the four points at which application hooks run
// synchronously: before/after a garbage collection, before/after a
// reordering pass. Hooks must not reenter the manager.
type HookPoint int

const (
	HookPreGC HookPoint = iota
	HookPostGC
	HookPreReorder
	HookPostReorder
)

// Hook is a callback registered on a Manager; returning false aborts the
// operation it is guarding (a GC or a reordering pass).
type Hook func(*Manager) bool

// uniqueKey is the lookup key of the unique table: a node is uniquely
// determined by its level and its two children (spec.md's canonicity
// invariant U1). BDD/ADD and ZDD each get their own table since the two
// families never share nodes, but the key shape is identical.
type uniqueKey struct {
	level int32
	then  Handle
	els   Handle
}

// Manager is the process-wide owner of every node, cache entry, and
// ordering. All decision-diagram operators are methods on *Manager.
//
// The unique table is a plain Go map keyed by (level, then, else), one map
// per family, generalizing the source library's hudd variant (a map keyed on
// a hand-packed byte buffer) to a native comparable struct key - the same
// "runtime hashmap as unique table" design, without the manual hashing.
type Manager struct {
	configs

	// BDD/ADD family: shared arena, shared unique table.
	varnum    int32
	index2lvl []int32
	level2idx []int32
	ithvar    []Handle // projection function per variable index (then=1,else=0)
	nithvar   []Handle // negation of the projection function
	nodes     []bddNode
	unique    map[uniqueKey]Handle
	constants map[uint64]Handle // ADD leaves beyond 0.0/1.0
	freepos   int32
	freenum   int
	produced  int

	// ZDD family: separate arena, separate level order (spec.md §3, §4.4.3).
	zddvarnum  int32
	zindex2lvl []int32
	zlevel2idx []int32
	zithvar    []Handle
	znodes     []zddNode
	zunique    map[uniqueKey]Handle
	zfreepos   int32
	zfreenum   int
	zproduced  int

	cache *computedCache

	// lifecycle
	refstack     []Handle // visibility stack protecting in-flight handles
	deathRow     []Handle
	deathHead    int
	deathCount   int
	deathMask    int

	// reordering
	reordered        bool
	reorderEnabled   bool
	nextDyn          int
	swapsThisPass    int
	reorderRunning   bool

	startTime time.Time
	err       *DDError
	log       *logrus.Entry
	hooks     [4][]Hook
	metrics   *metricsSet
}

// New returns a fresh Manager with varnum BDD/ADD variables and zddvarnum
// ZDD variables, both addressable in [0, n). Either count may be zero if
// that family is unused; variables can later be added with Reserve.
func New(varnum, zddvarnum int, options ...func(*configs)) (*Manager, error) {
	if varnum < 0 || varnum > int(maxVar) {
		return nil, &DDError{Code: InvalidArg, cause: fmt.Errorf("bad number of BDD/ADD variables (%d)", varnum)}
	}
	if zddvarnum < 0 || zddvarnum > int(maxVar) {
		return nil, &DDError{Code: InvalidArg, cause: fmt.Errorf("bad number of ZDD variables (%d)", zddvarnum)}
	}
	cfg := makeconfigs(varnum, zddvarnum)
	for _, f := range options {
		f(cfg)
	}
	m := &Manager{configs: *cfg}
	m.log = newLogger(cfg.loglevel)
	m.metrics = newMetricsSet()
	m.startTime = time.Now()
	m.reorderEnabled = true
	m.nextDyn = cfg.reorderinit
	m.constants = make(map[uint64]Handle)
	m.unique = make(map[uniqueKey]Handle, cfg.nodesize)
	m.zunique = make(map[uniqueKey]Handle, cfg.nodesize)
	m.initArena(cfg.nodesize)
	m.cacheinit(cfg)
	if err := m.reserveBDD(varnum); err != nil {
		return nil, err
	}
	if err := m.reserveZDD(zddvarnum); err != nil {
		return nil, err
	}
	depth := deathRowMinDepth
	for depth < 4 {
		depth <<= 1
	}
	m.deathRow = make([]Handle, depth)
	m.deathMask = depth - 1
	for i := range m.deathRow {
		m.deathRow[i] = handleInvalid
	}
	return m, nil
}

func (m *Manager) initArena(size int) {
	if size < 2 {
		size = 2
	}
	m.nodes = make([]bddNode, size)
	for k := range m.nodes {
		m.nodes[k] = bddNode{level: 0, next: int32(k + 1)}
	}
	m.nodes[size-1].next = 0
	// index 0: ADD/BDD "zero" (background, 0.0); index 1: "one" (1.0/true).
	// Constants carry the maxVar sentinel level so U4 (level(n) < level(child))
	// holds for every internal node regardless of how many variables the
	// manager is later grown to with Reserve.
	m.nodes[0] = bddNode{kind: kindConstant, level: maxVar, ref: maxRefCount, value: addZero}
	m.nodes[1] = bddNode{kind: kindConstant, level: maxVar, ref: maxRefCount, value: addOne}
	m.freepos = 2
	if size == 2 {
		m.freepos = 0 // no free slot: the first allocation grows the arena
	}
	m.freenum = size - 2
}

// AddRef increases the reference count on a handle (saturating) and returns
// it unchanged, so calls can be chained.
func (m *Manager) AddRef(h Handle) Handle {
	m.ref(h)
	return h
}

// DelRef decreases the reference count on a handle (saturating) and returns
// it unchanged. A node whose count reaches zero becomes eligible for GC but
// is not reclaimed immediately.
func (m *Manager) DelRef(h Handle) Handle {
	m.deref(h)
	return h
}

// AddHook registers a callback at the given hook point.
func (m *Manager) AddHook(point HookPoint, h Hook) {
	m.hooks[point] = append(m.hooks[point], h)
}

func (m *Manager) runHooks(point HookPoint) bool {
	for _, h := range m.hooks[point] {
		if !h(m) {
			return false
		}
	}
	return true
}

// liveNodeCount returns the number of allocated (non-free) arena slots
// across both families: the proxy the maxLive budget and the metrics
// nodes-live gauge are both computed from.
func (m *Manager) liveNodeCount() int {
	return (len(m.nodes) - m.freenum) + (len(m.znodes) - m.zfreenum)
}

// memUsed estimates the manager's arena footprint in bytes, the quantity
// Maxmem's hard cap bounds.
func (m *Manager) memUsed() int64 {
	return int64(len(m.nodes))*int64(unsafe.Sizeof(bddNode{})) + int64(len(m.znodes))*int64(unsafe.Sizeof(zddNode{}))
}

// checkBudget enforces the manager's wall-clock and memory budgets ahead of
// an allocation: every call to UniqueInter checks elapsed time against
// timeLimit and reports TimeoutExpired if exceeded, and the hard memory cap
// the same way via MaxMemExceeded (spec.md §5's cancellation/timeout note).
func (m *Manager) checkBudget() error {
	if m.timelimit > 0 && time.Since(m.startTime) > m.timelimit {
		return m.seterrorAsError(TimeoutExpired, "time limit of %s exceeded", m.timelimit)
	}
	if m.maxmem > 0 && m.memUsed() > m.maxmem {
		return m.seterrorAsError(MaxMemExceeded, "memory cap of %d bytes exceeded", m.maxmem)
	}
	return nil
}

// gcResizeThreshold returns the free-node percentage, below which a post-gc
// arena is resized rather than left as is, scaled off minfreenodes by the
// gcFrac family of config knobs: gchi while the arena is still small enough
// that growing it is cheap, gclo once it has grown past reorderinit, and
// gcmin (a much smaller multiplier) once the manager is already over its
// hard memory cap and growing further would only make things worse.
func (m *Manager) gcResizeThreshold() int {
	frac := m.gchi
	switch {
	case m.maxmem > 0 && m.memUsed() > m.maxmem:
		frac = m.gcmin
	case len(m.nodes) > m.reorderinit:
		frac = m.gclo
	}
	pct := int(frac * float64(m.minfreenodes))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// checkMaxLive enforces the maxLive node-count budget, the operation-
// specific resource cap spec.md §4.4.1 describes for the bounded
// ExistAbstract variant and, more generally, for any allocation.
func (m *Manager) checkMaxLive() error {
	if m.maxlive > 0 && m.liveNodeCount() >= m.maxlive {
		return m.seterrorAsError(TooManyNodes, "live node budget of %d exceeded", m.maxlive)
	}
	return nil
}

// Varnum returns the number of BDD/ADD variables.
func (m *Manager) Varnum() int { return int(m.varnum) }

// ZddVarnum returns the number of ZDD variables.
func (m *Manager) ZddVarnum() int { return int(m.zddvarnum) }
