// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrimeGte(t *testing.T) {
	require.Equal(t, 11, primeGte(10))
	require.Equal(t, 17, primeGte(17))
	require.Equal(t, 3, primeGte(0))
}

func TestPrimeLte(t *testing.T) {
	require.Equal(t, 7, primeLte(10))
	require.Equal(t, 17, primeLte(17))
	require.Equal(t, 1, primeLte(0))
}
