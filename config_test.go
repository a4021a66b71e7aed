// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOptionsApplyOverDefaults(t *testing.T) {
	m, err := New(2, 0,
		Maxnodesize(1000),
		ReorderInit(10),
		SiftMaxVar(5),
		Loglevel(2),
		Maxmem(1<<20),
		Timelimit(time.Second),
	)
	require.NoError(t, err)
	require.Equal(t, 1000, m.maxnodesize)
	require.Equal(t, 10, m.reorderinit)
	require.Equal(t, 5, m.siftmaxvar)
	require.Equal(t, 2, m.loglevel)
	require.Equal(t, int64(1<<20), m.maxmem)
	require.Equal(t, time.Second, m.timelimit)
}

func TestNodesizeOptionRejectsTooSmall(t *testing.T) {
	m, err := New(4, 0, Nodesize(1))
	require.NoError(t, err)
	// Nodesize only takes effect when it is at least enough to seat every
	// reserved variable's projection function plus the two constants.
	require.GreaterOrEqual(t, len(m.nodes), 2*4+2)
}

func TestMaxLiveOptionStopsFurtherAllocation(t *testing.T) {
	m, err := New(2, 0, MaxLive(4))
	require.NoError(t, err)
	// The two constants plus both projection-function variables already sit
	// at the budget; any further internal node must be refused.
	res := m.And(m.Ithvar(0), m.Ithvar(1))
	require.False(t, res.valid())
	require.Equal(t, TooManyNodes, m.ErrorCode())
}

func TestTimelimitOptionExpiresAfterBudget(t *testing.T) {
	m, err := New(2, 0, Timelimit(20*time.Millisecond))
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	res := m.And(m.Ithvar(0), m.Ithvar(1))
	require.False(t, res.valid())
	require.Equal(t, TimeoutExpired, m.ErrorCode())
}

func TestMaxmemOptionRejectsConstructionOverCap(t *testing.T) {
	// A 1-byte cap can't even seat the two constants, so checkBudget must
	// trip during the manager's own construction, inside reserveBDD's calls
	// to UniqueInter.
	_, err := New(2, 0, Maxmem(1))
	require.Error(t, err)
	var ddErr *DDError
	require.ErrorAs(t, err, &ddErr)
	require.Equal(t, MaxMemExceeded, ddErr.Code)
}

func TestCheckBudgetReportsMaxMemExceeded(t *testing.T) {
	m, err := New(2, 0)
	require.NoError(t, err)
	m.maxmem = 1
	require.Error(t, m.checkBudget())
	require.Equal(t, MaxMemExceeded, m.ErrorCode())
}

func TestGcResizeThresholdScalesWithPressure(t *testing.T) {
	m, err := New(2, 0)
	require.NoError(t, err)
	require.Equal(t, int(m.gchi*float64(m.minfreenodes)), m.gcResizeThreshold())

	m.maxnodesize = 0
	for len(m.nodes) <= m.reorderinit {
		require.NoError(t, m.bddresize())
	}
	require.Equal(t, int(m.gclo*float64(m.minfreenodes)), m.gcResizeThreshold())

	m.maxmem = 1
	require.Equal(t, int(m.gcmin*float64(m.minfreenodes)), m.gcResizeThreshold())
}
