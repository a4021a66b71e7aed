// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandleComplementBit(t *testing.T) {
	h := newHandle(7, false)
	require.Equal(t, 7, h.index())
	require.False(t, h.IsComplement())

	c := h.Not()
	require.True(t, c.IsComplement())
	require.Equal(t, 7, c.index())
	require.Equal(t, h, c.Regular())
	require.Equal(t, h, c.Not())
}

func TestHandleValidity(t *testing.T) {
	require.False(t, handleInvalid.valid())
	require.True(t, newHandle(0, false).valid())
}
