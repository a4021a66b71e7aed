// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheLookupMiss(t *testing.T) {
	m, err := New(2, 0)
	require.NoError(t, err)
	_, ok := m.cache.lookup(cacheTag(famApply, int32(OPand), 0), 1, 2, 0)
	require.False(t, ok)
}

func TestCacheInsertThenHit(t *testing.T) {
	m, err := New(2, 0)
	require.NoError(t, err)
	tag := cacheTag(famApply, int32(OPand), 0)
	m.cache.insert(tag, 1, 2, 0, 99)
	res, ok := m.cache.lookup(tag, 1, 2, 0)
	require.True(t, ok)
	require.Equal(t, Handle(99), res)
}

func TestCacheResetClearsHitsAndEntries(t *testing.T) {
	m, err := New(2, 0)
	require.NoError(t, err)
	tag := cacheTag(famApply, int32(OPand), 0)
	m.cache.insert(tag, 1, 2, 0, 99)
	m.cache.lookup(tag, 1, 2, 0)
	require.Greater(t, m.cache.hits, int64(0))

	m.cache.reset()
	_, ok := m.cache.lookup(tag, 1, 2, 0)
	require.False(t, ok)
}

func TestExistAbstractOverEmptyCubeIsIdentity(t *testing.T) {
	m, err := New(3, 0)
	require.NoError(t, err)
	f := m.And(m.Ithvar(0), m.Ithvar(1))
	require.Equal(t, f, m.ExistAbstract(f, m.Cube(nil)))
}

func TestApplyResultIsCached(t *testing.T) {
	m, err := New(2, 0)
	require.NoError(t, err)
	x, y := m.Ithvar(0), m.Ithvar(1)
	first := m.And(x, y)
	before := m.cache.hits
	second := m.And(x, y)
	require.Equal(t, first, second)
	require.Greater(t, m.cache.hits, before)
}
