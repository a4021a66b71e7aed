// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestIteMatchesDefinition checks Ite against its textbook definition,
// grounded on the source library's TestIte_1 (the same identity, checked via
// Equiv there and via Biimp against True here).
func TestIteMatchesDefinition(t *testing.T) {
	m, err := New(4, 0)
	require.NoError(t, err)
	f := m.Cube([]int{0, 2})
	g := m.Cube([]int{0, 3})
	lhs := m.Ite(f, g, m.Not(g))
	rhs := m.Or(m.And(f, g), m.And(m.Not(f), m.Not(g)))
	require.Equal(t, m.True(), m.Biimp(lhs, rhs))
}

func TestNotIsInvolution(t *testing.T) {
	m, err := New(3, 0)
	require.NoError(t, err)
	f := m.And(m.Ithvar(0), m.Not(m.Ithvar(1)))
	require.Equal(t, f, m.Not(m.Not(f)))
}

func TestApplyBooleanIdentities(t *testing.T) {
	m, err := New(2, 0)
	require.NoError(t, err)
	x, y := m.Ithvar(0), m.Ithvar(1)

	require.Equal(t, m.True(), m.Or(x, m.Not(x)))
	require.Equal(t, m.False(), m.And(x, m.Not(x)))
	require.Equal(t, m.Not(m.And(x, y)), m.Nand(x, y))
	require.Equal(t, m.Not(m.Or(x, y)), m.Nor(x, y))
	require.Equal(t, m.Or(m.Not(x), y), m.Imp(x, y))
	require.Equal(t, m.Not(m.Xor(x, y)), m.Biimp(x, y))
}

func TestAndNOrN(t *testing.T) {
	m, err := New(3, 0)
	require.NoError(t, err)
	x, y, z := m.Ithvar(0), m.Ithvar(1), m.Ithvar(2)
	require.Equal(t, m.And(m.And(x, y), z), m.AndN(x, y, z))
	require.Equal(t, m.Or(m.Or(x, y), z), m.OrN(x, y, z))
	require.Equal(t, m.True(), m.AndN())
	require.Equal(t, m.False(), m.OrN())
}

func TestLeqAndIteConstant(t *testing.T) {
	m, err := New(2, 0)
	require.NoError(t, err)
	x, y := m.Ithvar(0), m.Ithvar(1)
	require.True(t, m.Leq(m.And(x, y), x))
	require.False(t, m.Leq(x, m.And(x, y)))
	require.Equal(t, dontCare, m.IteConstant(x, y, m.Not(y)))
}

func TestExistAbstract(t *testing.T) {
	m, err := New(3, 0)
	require.NoError(t, err)
	f := m.Or(m.And(m.Ithvar(0), m.Ithvar(1)), m.Ithvar(2))
	cube := m.Cube([]int{0})
	// Quantifying out x0 from (x0&x1)|x2 must yield x1|x2.
	require.Equal(t, m.Or(m.Ithvar(1), m.Ithvar(2)), m.ExistAbstract(f, cube))
}

func TestUnivAbstract(t *testing.T) {
	m, err := New(2, 0)
	require.NoError(t, err)
	f := m.Or(m.Ithvar(0), m.Not(m.Ithvar(0)))
	cube := m.Cube([]int{0})
	require.Equal(t, m.True(), m.UnivAbstract(f, cube))
}

func TestAndExistMatchesApplyThenExist(t *testing.T) {
	m, err := New(3, 0)
	require.NoError(t, err)
	f := m.Ithvar(0)
	g := m.Ithvar(1)
	cube := m.Cube([]int{0})
	want := m.ExistAbstract(m.And(f, g), cube)
	require.Equal(t, want, m.AndExist(f, g, cube))
}

func TestCubeAndScansetRoundtrip(t *testing.T) {
	m, err := New(4, 0)
	require.NoError(t, err)
	vars := []int{0, 2, 3}
	cube := m.Cube(vars)
	require.Equal(t, vars, m.Scanset(cube))
}

func TestCofactorAndBooleanDiff(t *testing.T) {
	m, err := New(2, 0)
	require.NoError(t, err)
	f := m.And(m.Ithvar(0), m.Ithvar(1))
	require.Equal(t, m.Ithvar(1), m.Cofactor(f, 0, true))
	require.Equal(t, m.False(), m.Cofactor(f, 0, false))
	require.Equal(t, m.Ithvar(1), m.BooleanDiff(f, 0))
	require.True(t, m.IsEssential(f, 0))
	require.False(t, m.IsEssential(m.Ithvar(1), 0))
}

func TestCheckCubeRejectsNonCube(t *testing.T) {
	m, err := New(2, 0)
	require.NoError(t, err)
	notACube := m.Or(m.Ithvar(0), m.Ithvar(1))
	res := m.ExistAbstract(m.Ithvar(0), notACube)
	require.False(t, res.valid())
	require.True(t, m.Errored())
}
