// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadVarnum(t *testing.T) {
	_, err := New(-1, 0)
	require.Error(t, err)

	_, err = New(0, -1)
	require.Error(t, err)
}

func TestNewHasWorkingConstants(t *testing.T) {
	m, err := New(4, 0)
	require.NoError(t, err)
	require.Equal(t, m.True(), m.From(true))
	require.Equal(t, m.False(), m.From(false))
	require.NotEqual(t, m.True(), m.False())
	require.True(t, m.IsConst(m.True()))
	require.True(t, m.IsConst(m.False()))
}

func TestReserveGrowsVarnum(t *testing.T) {
	m, err := New(2, 0)
	require.NoError(t, err)
	require.Equal(t, 2, m.Varnum())

	require.NoError(t, m.Reserve(5))
	require.Equal(t, 5, m.Varnum())

	// Shrinking is a no-op: Reserve never removes variables.
	require.NoError(t, m.Reserve(1))
	require.Equal(t, 5, m.Varnum())
}

func TestIthvarGrowsOnDemand(t *testing.T) {
	m, err := New(1, 0)
	require.NoError(t, err)
	h := m.Ithvar(3)
	require.False(t, m.Errored())
	require.True(t, h.valid())
	require.Equal(t, 4, m.Varnum())
}

func TestAddRefDelRefRoundtrip(t *testing.T) {
	m, err := New(3, 0)
	require.NoError(t, err)
	f := m.AddRef(m.And(m.Ithvar(0), m.Ithvar(1)))
	require.True(t, f.valid())
	m.DelRef(f)
	// The handle value itself is unaffected by a DelRef; only the node's
	// eligibility for reclamation changes.
	require.True(t, f.valid())
}

func TestHooksCanAbortGC(t *testing.T) {
	m, err := New(4, 0)
	require.NoError(t, err)
	called := false
	m.AddHook(HookPreGC, func(*Manager) bool {
		called = true
		return false
	})
	m.gc()
	require.True(t, called)
}
