// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import "github.com/silvado/dd"

// nqueens builds the BDD encoding every placement of N non-attacking queens
// on an N*N board, one boolean variable per square, used by ddctl as a
// self-contained workload for stats/dot/bench since the manager has no file
// format to load a diagram from.
func nqueens(m *dd.Manager, n int) dd.Handle {
	x := make([][]dd.Handle, n)
	for i := range x {
		x[i] = make([]dd.Handle, n)
		for j := range x[i] {
			x[i][j] = m.Ithvar(i*n + j)
		}
	}

	queen := m.True()
	for i := 0; i < n; i++ {
		row := m.False()
		for j := 0; j < n; j++ {
			row = m.Or(row, x[i][j])
		}
		queen = m.And(queen, row)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			col := m.True()
			for k := 0; k < n; k++ {
				if k != j {
					col = m.And(col, m.Imp(x[i][j], m.Not(x[i][k])))
				}
			}
			rowExcl := m.True()
			for k := 0; k < n; k++ {
				if k != i {
					rowExcl = m.And(rowExcl, m.Imp(x[i][j], m.Not(x[k][j])))
				}
			}
			upRight := m.True()
			for k := 0; k < n; k++ {
				l := k - i + j
				if l >= 0 && l < n && k != i {
					upRight = m.And(upRight, m.Imp(x[i][j], m.Not(x[k][l])))
				}
			}
			downRight := m.True()
			for k := 0; k < n; k++ {
				l := i + j - k
				if l >= 0 && l < n && k != i {
					downRight = m.And(downRight, m.Imp(x[i][j], m.Not(x[k][l])))
				}
			}
			queen = m.AndN(queen, col, rowExcl, upRight, downRight)
		}
	}
	return queen
}
