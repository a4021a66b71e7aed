// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSiftPreservesFunction checks that a sifting pass never changes the
// Boolean function a live handle denotes, only the variable order backing
// it - swapLevel rewrites a node's contents in place but keeps its arena
// slot, so the handle itself stays valid and its SatCount must be the exact
// invariant a correct reordering preserves.
func TestSiftPreservesFunction(t *testing.T) {
	m, err := New(6, 0)
	require.NoError(t, err)
	f := m.AddRef(m.Or(m.And(m.Ithvar(0), m.Ithvar(3)), m.And(m.Ithvar(1), m.Not(m.Ithvar(4)))))
	before := m.SatCount(f)

	require.NoError(t, m.Sift())

	require.Equal(t, before, m.SatCount(f))
	require.Equal(t, m.True(), m.Biimp(f, f))
}

// TestAllSatAfterSiftReportsByVariableIndex guards against AllSat indexing
// its profile slice by order position instead of variable index once Sift
// has actually moved variables around: f depends only on variables 0 and 3,
// so every reported assignment must pin prof[0]==1 and prof[3]==1 and leave
// every other index a don't care, regardless of where Sift relocates those
// variables in the order.
func TestAllSatAfterSiftReportsByVariableIndex(t *testing.T) {
	m, err := New(6, 0)
	require.NoError(t, err)
	f := m.AddRef(m.And(m.Ithvar(0), m.Ithvar(3)))

	require.NoError(t, m.Sift())

	seen := 0
	err = m.AllSat(f, func(prof []int) error {
		seen++
		require.Equal(t, 1, prof[0])
		require.Equal(t, 1, prof[3])
		for _, idx := range []int{1, 2, 4, 5} {
			require.Equal(t, -1, prof[idx])
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, seen)
}

func TestWindowPermuteRejectsBadWidth(t *testing.T) {
	m, err := New(4, 0)
	require.NoError(t, err)
	require.Error(t, m.WindowPermute(1))
	require.Error(t, m.WindowPermute(5))
}

func TestWindowPermutePreservesFunction(t *testing.T) {
	m, err := New(5, 0)
	require.NoError(t, err)
	f := m.AddRef(m.Xor(m.Ithvar(0), m.And(m.Ithvar(2), m.Ithvar(4))))
	before := m.SatCount(f)

	require.NoError(t, m.WindowPermute(3))

	require.Equal(t, before, m.SatCount(f))
}

func TestSiftNoopWhenReorderingDisabled(t *testing.T) {
	m, err := New(4, 0)
	require.NoError(t, err)
	m.reorderEnabled = false
	order := append([]int32(nil), m.index2lvl...)
	require.NoError(t, m.Sift())
	require.Equal(t, order, m.index2lvl)
}
