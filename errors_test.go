// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorLifecycle(t *testing.T) {
	m, err := New(1, 0)
	require.NoError(t, err)
	require.False(t, m.Errored())
	require.Equal(t, NoError, m.ErrorCode())
	require.Equal(t, "", m.Error())

	res := m.Ite(handleInvalid, m.True(), m.False())
	require.False(t, res.valid())
	require.True(t, m.Errored())
	require.Equal(t, InvalidArg, m.ErrorCode())
	require.NotEmpty(t, m.Error())

	m.ClearError()
	require.False(t, m.Errored())
}

func TestErrorCodeStrings(t *testing.T) {
	require.Equal(t, "no error", NoError.String())
	require.Equal(t, "invalid argument", InvalidArg.String())
	require.Equal(t, "memory out", MemoryOut.String())
}
