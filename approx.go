// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import "math/big"

// nodeProfile is the per-node record built by the profiling pass: topDist is
// the shortest distance (in edges) from the subset root to this node,
// botDist is the longest remaining distance to a terminal (a cheap proxy for
// how many nodes sit below it), and minterms is the node's own satcount-style
// minterm weight. Reaching the same arena slot through a complemented and a
// regular edge are different Handles already (the complement bit is part of
// Handle identity), so there is no separate odd/even parity bookkeeping to
// do beyond keying this table by Handle.
type nodeProfile struct {
	topDist  int
	botDist  int
	minterms *big.Int
}

// profile runs the BFS/DFS profiling pass over every node reachable from f,
// grounded on the source library's CreatePathTable (top-distance via a BFS
// queue, bottom-distance and minterm-counts via a post-order walk).
func (m *Manager) profile(f Handle) map[Handle]*nodeProfile {
	prof := make(map[Handle]*nodeProfile)
	if m.IsConst(f) {
		return prof
	}

	// topDist: first-visit BFS level.
	queue := []Handle{f}
	prof[f] = &nodeProfile{topDist: 0}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		d := prof[n].topDist
		for _, c := range []Handle{m.Low(n), m.High(n)} {
			if m.IsConst(c) {
				continue
			}
			if _, seen := prof[c]; !seen {
				prof[c] = &nodeProfile{topDist: d + 1}
				queue = append(queue, c)
			}
		}
	}

	// botDist and minterms: post-order, memoized by the same table.
	minterms := make(map[Handle]*big.Int)
	var walk func(n Handle) int
	walk = func(n Handle) int {
		if m.IsConst(n) {
			return 0
		}
		p := prof[n]
		if p.minterms != nil {
			return p.botDist
		}
		lo, hi := walk(m.Low(n)), walk(m.High(n))
		p.botDist = 1 + maxInt(lo, hi)
		p.minterms = m.satcount(n, minterms)
		return p.botDist
	}
	walk(f)
	return prof
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// weight converts botDist into the subtree-size proxy used by the synthesis
// pass's node-savings estimate: the number of nodes in a full binary tree of
// that depth, capped well below any risk of int overflow.
func weight(botDist int) int {
	if botDist > 30 {
		botDist = 30
	}
	return (1 << uint(botDist)) - 1
}

// UnderApprox computes a subset of f (a BDD implied by f, spec.md §4.4.4):
// the synthesis pass walks f top-down, memoized, and at each internal node
// either keeps it or replaces it with False; a node is never remapped to one
// of its children. A node is replaced by False when its estimated
// node-savings s = weight(botDist) is at least threshold and the fraction of
// f's minterms it carries, times quality, is below 1/(s+1).
func (m *Manager) UnderApprox(f Handle, threshold int, quality float64) Handle {
	if !f.valid() {
		return m.seterror(InvalidArg, "invalid operand in UnderApprox")
	}
	if m.IsConst(f) {
		return f
	}
	prof := m.profile(f)
	total := new(big.Float).SetInt(m.SatCount(f))
	seen := make(map[Handle]Handle)
	m.refstack = m.refstack[:0]
	res := m.synthesize(f, prof, total, quality, threshold, nil, seen)
	return res
}

// UnderApproxHardLimit behaves like UnderApprox but additionally counts
// every UniqueInter call of the synthesis pass against maxNewNodes, whether
// or not the call creates a new node; once that budget is spent, every node
// not yet synthesized is replaced with False.
func (m *Manager) UnderApproxHardLimit(f Handle, threshold int, quality float64, maxNewNodes int) Handle {
	if !f.valid() {
		return m.seterror(InvalidArg, "invalid operand in UnderApproxHardLimit")
	}
	if m.IsConst(f) {
		return f
	}
	prof := m.profile(f)
	total := new(big.Float).SetInt(m.SatCount(f))
	seen := make(map[Handle]Handle)
	budget := maxNewNodes
	return m.synthesize(f, prof, total, quality, threshold, &budget, seen)
}

// synthesize is the shared recursive core of UnderApprox/UnderApproxHardLimit.
// budget, when non-nil, is decremented on every UniqueInter call and forces a False replacement once exhausted (the hard-limit
// variant); nil means unlimited, matching plain UnderApprox.
func (m *Manager) synthesize(n Handle, prof map[Handle]*nodeProfile, total *big.Float, quality float64, threshold int, budget *int, seen map[Handle]Handle) Handle {
	if m.IsConst(n) {
		return n
	}
	if r, ok := seen[n]; ok {
		return r
	}
	p := prof[n]
	savings := weight(p.botDist)

	if savings >= threshold {
		loss := new(big.Float).SetInt(p.minterms)
		loss.Quo(loss, total)
		lossF, _ := loss.Float64()
		if lossF*quality < 1.0/float64(savings+1) {
			seen[n] = m.False()
			return m.False()
		}
	}
	if budget != nil && *budget <= 0 {
		seen[n] = m.False()
		return m.False()
	}

	low := m.pushref(m.synthesize(m.Low(n), prof, total, quality, threshold, budget, seen))
	high := m.pushref(m.synthesize(m.High(n), prof, total, quality, threshold, budget, seen))

	var res Handle
	if low == high {
		res = low
	} else {
		if budget != nil {
			*budget--
		}
		res = m.UniqueInter(m.level(n), high, low)
	}
	m.popref(2)
	seen[n] = res
	return res
}

// ShortestPathSubset keeps every node whose shortest distance (in edges)
// from f is at most maxpath, plus the first maxpath+1 deeper nodes its
// depth-first rebuild reaches, and replaces every other node with False.
// The length of the paths from a node down to the terminals is not
// considered (spec.md §4.4.4's "shortest-paths variant", grounded on the source
// library's CreatePathTable/BuildSubsetBdd two-pass structure).
func (m *Manager) ShortestPathSubset(f Handle, maxpath int) Handle {
	if !f.valid() {
		return m.seterror(InvalidArg, "invalid operand in ShortestPathSubset")
	}
	if m.IsConst(f) {
		return f
	}
	prof := m.profile(f)
	seen := make(map[Handle]Handle)
	budget := maxpath + 1
	var walk func(n Handle) Handle
	walk = func(n Handle) Handle {
		if m.IsConst(n) {
			return n
		}
		if r, ok := seen[n]; ok {
			return r
		}
		p := prof[n]
		if p.topDist > maxpath {
			if budget <= 0 {
				seen[n] = m.False()
				return m.False()
			}
			budget--
		}
		low := m.pushref(walk(m.Low(n)))
		high := m.pushref(walk(m.High(n)))
		var res Handle
		if low == high {
			res = low
		} else {
			res = m.UniqueInter(m.level(n), high, low)
		}
		m.popref(2)
		seen[n] = res
		return res
	}
	m.refstack = m.refstack[:0]
	return walk(f)
}
