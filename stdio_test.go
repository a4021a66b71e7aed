// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatsReportsLiveNodes(t *testing.T) {
	m, err := New(3, 0)
	require.NoError(t, err)
	_ = m.And(m.Ithvar(0), m.Ithvar(1))
	out := m.Stats()
	require.Contains(t, out, "Allocated")
	require.Contains(t, out, "Cache hits")
}

func TestAllnodesWalksReachableSet(t *testing.T) {
	m, err := New(3, 0)
	require.NoError(t, err)
	f := m.And(m.Ithvar(0), m.Ithvar(1))
	var ids []int
	err = m.Allnodes(func(id, level, low, high int) error {
		ids = append(ids, id)
		return nil
	}, f)
	require.NoError(t, err)
	require.NotEmpty(t, ids)
}

func TestPrintDotWritesFile(t *testing.T) {
	m, err := New(2, 0)
	require.NoError(t, err)
	f := m.And(m.Ithvar(0), m.Ithvar(1))
	path := filepath.Join(t.TempDir(), "out.dot")
	require.NoError(t, m.PrintDot(path, f))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(content), "digraph"))
}
