// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelAndVarAtAreInverse(t *testing.T) {
	m, err := New(4, 0)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		lvl := m.Level(i)
		require.Equal(t, i, m.VarAt(lvl))
	}
}

func TestLowHighRespectComplementBit(t *testing.T) {
	m, err := New(1, 0)
	require.NoError(t, err)
	x := m.Ithvar(0)
	require.Equal(t, m.True(), m.High(x))
	require.Equal(t, m.False(), m.Low(x))

	nx := x.Not()
	require.Equal(t, m.False(), m.High(nx))
	require.Equal(t, m.True(), m.Low(nx))
}

func TestZIthvarGrowsOnDemand(t *testing.T) {
	m, err := New(0, 0)
	require.NoError(t, err)
	require.Equal(t, 0, int(m.zddvarnum))
	z := m.ZIthvar(2)
	require.True(t, z.valid())
	require.Equal(t, 3, int(m.zddvarnum))
}

func TestAddConstIntersAndValue(t *testing.T) {
	m, err := New(0, 0)
	require.NoError(t, err)
	a := m.AddConst(3.5)
	b := m.AddConst(3.5)
	require.Equal(t, a, b)
	require.Equal(t, 3.5, m.Value(a))
}

func TestFromAndConstants(t *testing.T) {
	m, err := New(0, 0)
	require.NoError(t, err)
	require.Equal(t, m.True(), m.From(true))
	require.Equal(t, m.False(), m.From(false))
	require.True(t, m.IsConst(m.True()))
	require.True(t, m.IsConst(m.False()))
}

func TestZEmptyAndZBaseAreDistinct(t *testing.T) {
	m, err := New(0, 0)
	require.NoError(t, err)
	require.NotEqual(t, m.ZEmpty(), m.ZBase())
}

func TestReserveIsNoopWhenShrinking(t *testing.T) {
	m, err := New(4, 0)
	require.NoError(t, err)
	require.NoError(t, m.Reserve(2))
	require.Equal(t, int32(4), m.varnum)
}
