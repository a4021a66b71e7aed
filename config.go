// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import "time"

// configs stores the configurable parameters of a Manager. Defaults mirror
// the ones documented for the engine this package is modeled after.
type configs struct {
	varnum          int // number of BDD/ADD variables
	zddvarnum       int // number of ZDD variables
	nodesize        int // initial number of nodes in the arena
	cachesize       int // initial cache size
	cacheratio      int // cache-size growth ratio (0 if constant)
	cachehitresize  int // cache hit-ratio threshold (%) that triggers a resize
	maxnodesize     int // hard cap on arena size (0 if unlimited)
	maxnodeincrease int // max nodes added per resize (0 if unlimited)
	minfreenodes    int // min free-node ratio (%) to keep after a GC
	gclo            float64 // gcResizeThreshold multiplier once the arena has grown past reorderinit
	gchi            float64 // gcResizeThreshold multiplier while the arena is still small
	gcmin           float64 // gcResizeThreshold multiplier once the manager is over its memory cap
	reordergrowth   float64 // sifting abort bound (bestSoFar * growth)
	siftmaxvar      int
	siftmaxswap     int
	reorderinit     int     // initial "nextDyn" threshold (nodes)
	reorderratio    float64 // growth ratio between dynamic reorder triggers
	loglevel        int
	maxmem          int64 // hard memory cap in bytes (0 if unlimited)
	timelimit       time.Duration
	maxlive         int // hard cap on live node count across both families (0 if unlimited)
}

func makeconfigs(varnum, zddvarnum int) *configs {
	c := &configs{varnum: varnum, zddvarnum: zddvarnum}
	c.minfreenodes = minFreeNodesDefault
	c.maxnodeincrease = defaultMaxNodeIncrease
	c.nodesize = 2*varnum + 2*zddvarnum + 2
	c.cachehitresize = 30
	c.gclo = 1.0
	c.gchi = 4.0
	c.gcmin = 0.2
	c.reordergrowth = 1.2
	c.siftmaxvar = 1000
	c.siftmaxswap = 2000000
	c.reorderinit = 4004
	c.reorderratio = 2.0
	return c
}

// Nodesize sets a preferred initial size for the node arena.
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		if size >= 2*c.varnum+2*c.zddvarnum+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize caps the total number of nodes the manager will allocate. The
// default (0) means no limit.
func Maxnodesize(size int) func(*configs) {
	return func(c *configs) { c.maxnodesize = size }
}

// Maxnodeincrease caps the number of nodes added to the arena per resize.
func Maxnodeincrease(size int) func(*configs) {
	return func(c *configs) { c.maxnodeincrease = size }
}

// Minfreenodes sets the ratio (%) of free nodes that must remain after a GC
// before a resize is triggered instead.
func Minfreenodes(ratio int) func(*configs) {
	return func(c *configs) { c.minfreenodes = ratio }
}

// Cachesize sets the initial number of entries in the computed cache.
func Cachesize(size int) func(*configs) {
	return func(c *configs) { c.cachesize = size }
}

// Cacheratio sets the cache-growth ratio (entries per 100 arena slots).
func Cacheratio(ratio int) func(*configs) {
	return func(c *configs) { c.cacheratio = ratio }
}

// CacheHitResize sets the hit-ratio threshold (%), default 30, at or above
// which the computed cache doubles in size at the next garbage collection.
// The cache never grows this way while Cacheratio is 0.
func CacheHitResize(pct int) func(*configs) {
	return func(c *configs) { c.cachehitresize = pct }
}

// ReorderGrowth sets the sifting abort bound: a sifting trip in one direction
// stops once the live node count exceeds bestSoFar*growth. Default 1.2.
func ReorderGrowth(growth float64) func(*configs) {
	return func(c *configs) { c.reordergrowth = growth }
}

// SiftMaxVar caps the number of variables considered in one sifting pass.
func SiftMaxVar(n int) func(*configs) {
	return func(c *configs) { c.siftmaxvar = n }
}

// SiftMaxSwap caps the number of adjacent swaps performed in one sifting pass.
func SiftMaxSwap(n int) func(*configs) {
	return func(c *configs) { c.siftmaxswap = n }
}

// ReorderInit sets the initial node-count threshold that triggers the first
// automatic reordering pass. Default 4004.
func ReorderInit(n int) func(*configs) {
	return func(c *configs) { c.reorderinit = n }
}

// Loglevel sets the verbosity of the manager's logrus logger (0 silent).
func Loglevel(level int) func(*configs) {
	return func(c *configs) { c.loglevel = level }
}

// Maxmem sets a hard memory cap, in bytes, on the node arena (0: unlimited).
func Maxmem(bytes int64) func(*configs) {
	return func(c *configs) { c.maxmem = bytes }
}

// Timelimit sets a wall-clock time budget measured from the manager's
// creation (0: unlimited); once it has elapsed, every UniqueInter call fails
// with TimeoutExpired. CPU time is not measured, and the clock is not reset
// between operator calls.
func Timelimit(d time.Duration) func(*configs) {
	return func(c *configs) { c.timelimit = d }
}

// MaxLive caps the number of live nodes (summed across the BDD/ADD and ZDD
// arenas) the manager may hold at once, enforced on every node allocation
// and, per spec.md's "maxLive-bounded" quantification variant, directly by
// ExistAbstract. 0 (default) means unlimited.
func MaxLive(n int) func(*configs) {
	return func(c *configs) { c.maxlive = n }
}
