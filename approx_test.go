// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnderApproxIsImpliedBySource(t *testing.T) {
	m, err := New(6, 0)
	require.NoError(t, err)
	f := m.OrN(m.Ithvar(0), m.Ithvar(1), m.Ithvar(2), m.Ithvar(3), m.Ithvar(4))
	sub := m.UnderApprox(f, 4, 1.0)
	// An under-approximation must only remove minterms, never add any.
	require.True(t, m.Leq(sub, f))
}

func TestUnderApproxLeavesSmallDiagramsAlone(t *testing.T) {
	m, err := New(3, 0)
	require.NoError(t, err)
	f := m.And(m.Ithvar(0), m.Ithvar(1))
	require.Equal(t, f, m.UnderApprox(f, 1000, 1.0))
}

func TestUnderApproxHardLimitRespectsBudget(t *testing.T) {
	m, err := New(6, 0)
	require.NoError(t, err)
	f := m.OrN(m.Ithvar(0), m.Ithvar(1), m.Ithvar(2), m.Ithvar(3), m.Ithvar(4))
	sub := m.UnderApproxHardLimit(f, 4, 1.0, 0)
	require.True(t, m.Leq(sub, f))
}

func TestShortestPathSubsetKeepsShortPaths(t *testing.T) {
	m, err := New(6, 0)
	require.NoError(t, err)
	f := m.OrN(m.Ithvar(0), m.Ithvar(1), m.Ithvar(2), m.Ithvar(3), m.Ithvar(4))
	sub := m.ShortestPathSubset(f, 1)
	require.True(t, m.Leq(sub, f))
	// x0 alone is a length-1 path to true and must survive.
	require.True(t, m.Leq(m.Ithvar(0), sub))
}

func TestApproxOnConstantIsIdentity(t *testing.T) {
	m, err := New(2, 0)
	require.NoError(t, err)
	require.Equal(t, m.True(), m.UnderApprox(m.True(), 0, 1.0))
	require.Equal(t, m.False(), m.ShortestPathSubset(m.False(), 0))
}
