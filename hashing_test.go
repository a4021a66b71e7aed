// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPairHashStaysInRange(t *testing.T) {
	for a := 0; a < 20; a++ {
		for b := 0; b < 20; b++ {
			h := pairHash(a, b, 97)
			require.GreaterOrEqual(t, h, 0)
			require.Less(t, h, 97)
		}
	}
}

func TestPairHashDistinguishesOrder(t *testing.T) {
	// Cantor pairing is not symmetric in general; spot-check a case where
	// swapping the operands changes the bucket.
	require.NotEqual(t, pairHash(1, 5, 1000), pairHash(5, 1, 1000))
}

func TestTripleAndQuadHashStayInRange(t *testing.T) {
	require.Less(t, tripleHash(1, 2, 3, 53), 53)
	require.Less(t, quadHash(1, 2, 3, 4, 53), 53)
}
