// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"fmt"
	"math/big"
)

// levelBound returns n's level, treating a constant as sitting one past the
// last real variable rather than at the maxVar sentinel: SatCount/AllSat use
// the gap between two levels to count the don't-care variables in between,
// and the sentinel would blow that gap up to the width of an int32.
func (m *Manager) levelBound(n Handle) int32 {
	if m.IsConst(n) {
		return m.varnum
	}
	return m.level(n)
}

// SatCount returns the number of satisfying variable assignments for f, as
// an arbitrary-precision integer to avoid overflow on a manager with many
// variables (spec.md §8 S3's "counting" sanity surface), grounded on the
// source library's Satcount.
func (m *Manager) SatCount(f Handle) *big.Int {
	if !f.valid() {
		return big.NewInt(0)
	}
	if m.IsConst(f) {
		if f == m.True() {
			return new(big.Int).SetBit(big.NewInt(0), int(m.varnum), 1)
		}
		return big.NewInt(0)
	}
	res := big.NewInt(0)
	res.SetBit(res, int(m.level(f)), 1)
	satc := make(map[Handle]*big.Int)
	return res.Mul(res, m.satcount(f, satc))
}

func (m *Manager) satcount(n Handle, satc map[Handle]*big.Int) *big.Int {
	if n == m.False() {
		return big.NewInt(0)
	}
	if n == m.True() {
		return big.NewInt(1)
	}
	if res, ok := satc[n]; ok {
		return res
	}
	lvl := m.level(n)
	low, high := m.Low(n), m.High(n)

	res := big.NewInt(0)
	loFactor := big.NewInt(0)
	loFactor.SetBit(loFactor, int(m.levelBound(low)-lvl-1), 1)
	res.Add(res, loFactor.Mul(loFactor, m.satcount(low, satc)))

	hiFactor := big.NewInt(0)
	hiFactor.SetBit(hiFactor, int(m.levelBound(high)-lvl-1), 1)
	res.Add(res, hiFactor.Mul(hiFactor, m.satcount(high, satc)))

	satc[n] = res
	return res
}

// AllSat iterates through every satisfying variable assignment of f, calling
// fn with a slice of length Varnum where entry i is 0 if variable i is false
// in the assignment, 1 if true, and -1 if it is a don't care. Iteration
// stops, and AllSat returns the error, as soon as fn returns one.
func (m *Manager) AllSat(f Handle, fn func([]int) error) error {
	if !f.valid() {
		return fmt.Errorf("invalid node in call to AllSat")
	}
	prof := make([]int, m.varnum)
	for k := range prof {
		prof[k] = -1
	}
	return m.allsat(f, prof, fn)
}

func (m *Manager) allsat(n Handle, prof []int, fn func([]int) error) error {
	if n == m.True() {
		return fn(prof)
	}
	if n == m.False() {
		return nil
	}
	lvl := m.level(n)

	if low := m.Low(n); low != m.False() {
		prof[m.VarAt(int(lvl))] = 0
		for v := int(m.levelBound(low)) - 1; v > int(lvl); v-- {
			prof[m.VarAt(v)] = -1
		}
		if err := m.allsat(low, prof, fn); err != nil {
			return err
		}
	}
	if high := m.High(n); high != m.False() {
		prof[m.VarAt(int(lvl))] = 1
		for v := int(m.levelBound(high)) - 1; v > int(lvl); v-- {
			prof[m.VarAt(v)] = -1
		}
		if err := m.allsat(high, prof, fn); err != nil {
			return err
		}
	}
	return nil
}
