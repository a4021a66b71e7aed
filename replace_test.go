// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplaceSwapsVariables(t *testing.T) {
	m, err := New(3, 0)
	require.NoError(t, err)
	r, err := m.NewReplacer([]int{0, 1}, []int{1, 0})
	require.NoError(t, err)

	f := m.And(m.Ithvar(0), m.Not(m.Ithvar(1)))
	want := m.And(m.Ithvar(1), m.Not(m.Ithvar(0)))
	require.Equal(t, want, m.Replace(f, r))
}

func TestReplaceIsIdentityOutsideDomain(t *testing.T) {
	m, err := New(3, 0)
	require.NoError(t, err)
	r, err := m.NewReplacer([]int{0}, []int{1})
	require.NoError(t, err)
	f := m.Ithvar(2)
	require.Equal(t, f, m.Replace(f, r))
}

func TestNewReplacerRejectsDuplicatesAndOutOfRange(t *testing.T) {
	m, err := New(3, 0)
	require.NoError(t, err)
	_, err = m.NewReplacer([]int{0, 0}, []int{1, 2})
	require.Error(t, err)

	_, err = m.NewReplacer([]int{0}, []int{5})
	require.Error(t, err)
}

func TestNewReplacerRejectsLengthMismatch(t *testing.T) {
	m, err := New(2, 0)
	require.NoError(t, err)
	_, err = m.NewReplacer([]int{0}, []int{0, 1})
	require.Error(t, err)
}
