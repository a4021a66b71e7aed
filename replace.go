// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"fmt"
	"math"
)

var replaceSeq int32 = 1

// Replacer is a variable-to-variable substitution built by NewReplacer and
// consumed by Manager.Replace: a simultaneous renaming of variables, not a
// substitution by an arbitrary function (that is Compose's job).
type Replacer interface {
	replace(level int32) (int32, bool)
	generation() int32
	String() string
}

type replacer struct {
	gen   int32
	image []int32 // maps a variable's current level to its replacement level
	last  int32
}

func (r *replacer) String() string {
	res := fmt.Sprintf("replacer(last: %d)[", r.last)
	first := true
	for k, v := range r.image {
		if int32(k) != v {
			if !first {
				res += ", "
			}
			first = false
			res += fmt.Sprintf("%d<-%d", k, v)
		}
	}
	return res + "]"
}

func (r *replacer) replace(level int32) (int32, bool) {
	if level > r.last {
		return level, false
	}
	return r.image[level], true
}

func (r *replacer) generation() int32 { return r.gen }

// NewReplacer builds a Replacer substituting variable oldvars[k] with
// newvars[k] for every k, validating that both slices have the same length,
// that every index names an existing variable, and that no variable repeats
// in oldvars. A variable may appear in both slices, so a swap such as
// {0,1} -> {1,0} is accepted; repeats within newvars are not rejected.
func (m *Manager) NewReplacer(oldvars, newvars []int) (Replacer, error) {
	if len(oldvars) != len(newvars) {
		return nil, fmt.Errorf("unmatched length of variable slices")
	}
	if replaceSeq == math.MaxInt32>>2 {
		return nil, fmt.Errorf("too many replacers created")
	}
	res := &replacer{gen: replaceSeq}
	replaceSeq++
	varnum := m.Varnum()
	support := make([]bool, varnum)
	res.image = make([]int32, varnum)
	for k := range res.image {
		res.image[k] = int32(k)
	}
	for k, v := range oldvars {
		if v < 0 || v >= varnum {
			return nil, fmt.Errorf("invalid variable in oldvars (%d)", v)
		}
		if support[v] {
			return nil, fmt.Errorf("duplicate variable (%d) in oldvars", v)
		}
		if newvars[k] < 0 || newvars[k] >= varnum {
			return nil, fmt.Errorf("invalid variable in newvars (%d)", newvars[k])
		}
		support[v] = true
		lvl := int32(m.Level(v))
		res.image[lvl] = int32(m.Level(newvars[k]))
		if lvl > res.last {
			res.last = lvl
		}
	}
	for _, v := range newvars {
		lvl := int32(m.Level(v))
		if res.image[lvl] != lvl && !support[v] {
			return nil, fmt.Errorf("variable in newvars (%d) also occurs in oldvars", v)
		}
	}
	return res, nil
}

// Replace substitutes every variable in r's domain throughout f, rebuilding
// bottom-up and reusing r's generation id as the cache tag so two distinct
// replacers never collide on the same cache entries.
func (m *Manager) Replace(f Handle, r Replacer) Handle {
	if !f.valid() {
		return m.seterror(InvalidArg, "invalid operand in Replace")
	}
	m.maybeAutoReorder()
	m.refstack = m.refstack[:0]
	m.pushref(f)
	res := m.replace(f, r)
	m.popref(1)
	return res
}

func (m *Manager) replace(f Handle, r Replacer) Handle {
	if m.IsConst(f) {
		return f
	}
	flvl := m.level(f)
	newlvl, changed := r.replace(flvl)
	if !changed {
		return f
	}
	tag := cacheTag(famReplace, 0, r.generation())
	if res, ok := m.cache.lookup(tag, f, 0, 0); ok {
		return res
	}
	low := m.pushref(m.replace(m.Low(f), r))
	high := m.pushref(m.replace(m.High(f), r))
	// The new variable may sit below variables the renamed children now
	// test, so the node is rebuilt through ite rather than UniqueInter.
	res := m.ite(m.ithvar[m.level2idx[newlvl]], high, low)
	m.popref(2)
	return m.cache.insert(tag, f, 0, 0, res)
}
