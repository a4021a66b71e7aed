// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSatCountConstants(t *testing.T) {
	m, err := New(3, 0)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(0), m.SatCount(m.False()))
	require.Equal(t, big.NewInt(8), m.SatCount(m.True()))
}

func TestSatCountSingleVariable(t *testing.T) {
	m, err := New(3, 0)
	require.NoError(t, err)
	x := m.Ithvar(0)
	// x0 true, x1/x2 free: 4 satisfying assignments out of 8.
	require.Equal(t, big.NewInt(4), m.SatCount(x))
}

func TestSatCountConjunction(t *testing.T) {
	m, err := New(3, 0)
	require.NoError(t, err)
	f := m.And(m.Ithvar(0), m.Ithvar(1))
	// x0=x1=true, x2 free: 2 satisfying assignments out of 8.
	require.Equal(t, big.NewInt(2), m.SatCount(f))
}

func TestAllSatEnumeratesEverySolution(t *testing.T) {
	m, err := New(2, 0)
	require.NoError(t, err)
	f := m.Xor(m.Ithvar(0), m.Ithvar(1))
	var profiles [][]int
	err = m.AllSat(f, func(p []int) error {
		cp := append([]int(nil), p...)
		profiles = append(profiles, cp)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, profiles, 2)
}

func TestAllSatStopsOnError(t *testing.T) {
	m, err := New(3, 0)
	require.NoError(t, err)
	boom := errStop{}
	calls := 0
	err = m.AllSat(m.True(), func([]int) error {
		calls++
		return boom
	})
	require.Equal(t, boom, err)
	require.Equal(t, 1, calls)
}

type errStop struct{}

func (errStop) Error() string { return "stop" }
