// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
)

// Stats returns a human-readable snapshot of the manager's internal
// counters: arena occupancy, GC/reorder activity and the computed-cache hit
// ratio. It duplicates, in text form, what Collectors exposes to Prometheus -
// handy for a one-off CLI dump without standing up a registry.
func (m *Manager) Stats() string {
	res := fmt.Sprintf("Varnum:       %d\n", m.varnum)
	res += fmt.Sprintf("ZddVarnum:    %d\n", m.zddvarnum)
	res += fmt.Sprintf("Allocated:    %d\n", len(m.nodes))
	res += fmt.Sprintf("Produced:     %d\n", m.produced)
	r := 0.0
	if len(m.nodes) > 0 {
		r = (float64(m.freenum) / float64(len(m.nodes))) * 100
	}
	res += fmt.Sprintf("Free:         %d  (%.3g %%)\n", m.freenum, r)
	res += fmt.Sprintf("Used:         %d  (%.3g %%)\n", len(m.nodes)-m.freenum, 100.0-r)
	res += fmt.Sprintf("ZAllocated:   %d\n", len(m.znodes))
	res += fmt.Sprintf("ZProduced:    %d\n", m.zproduced)
	res += "==============\n"
	res += fmt.Sprintf("Cache hits:   %d\n", m.cache.hits)
	res += fmt.Sprintf("Cache misses: %d\n", m.cache.misses)
	res += fmt.Sprintf("Hit ratio:    %d%%\n", m.cache.hitRatioPct())
	res += fmt.Sprintf("Reordered:    %v\n", m.reordered)
	return res
}

// Allnodes visits every reachable node below the given roots (or below every
// BDD/ADD node with a positive reference count that is not flagged dead, if
// no root is given), calling fn with the node's arena
// index, level, and the arena indices of its else/then children. Traversal
// stops at the first error fn returns.
func (m *Manager) Allnodes(fn func(id, level, low, high int) error, roots ...Handle) error {
	seen := make(map[int]bool)
	if len(roots) == 0 {
		for i := 2; i < len(m.nodes); i++ {
			if m.nodes[i].dead || m.nodes[i].ref == 0 {
				continue
			}
			roots = append(roots, newHandle(i, false))
		}
	}
	for _, r := range roots {
		if err := m.walk(r, seen, fn); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) walk(n Handle, seen map[int]bool, fn func(id, level, low, high int) error) error {
	idx := n.index()
	if idx < 2 || seen[idx] {
		return nil
	}
	seen[idx] = true
	node := m.nodes[idx]
	if err := m.walk(node.els, seen, fn); err != nil {
		return err
	}
	if err := m.walk(node.then, seen, fn); err != nil {
		return err
	}
	return fn(idx, int(node.level), node.els.index(), node.then.index())
}

// Print writes a textual table of every node reachable from roots (from the
// referenced nodes, as in Allnodes, if roots is empty) to standard output.
func (m *Manager) Print(roots ...Handle) {
	m.print(os.Stdout, roots...)
}

func (m *Manager) print(w io.Writer, roots ...Handle) {
	if mesg := m.Error(); mesg != "" {
		fmt.Fprintf(w, "Error: %s\n", mesg)
		return
	}
	if len(roots) == 1 {
		switch roots[0] {
		case bddZero:
			fmt.Fprintln(w, "False")
			return
		case bddOne:
			fmt.Fprintln(w, "True")
			return
		}
	}
	nodes := make([][4]int, 0)
	err := m.Allnodes(func(id, level, low, high int) error {
		i := sort.Search(len(nodes), func(i int) bool { return nodes[i][0] >= id })
		nodes = append(nodes, [4]int{})
		copy(nodes[i+1:], nodes[i:])
		nodes[i] = [4]int{id, level, low, high}
		return nil
	}, roots...)
	if err != nil {
		fmt.Fprintln(w, err.Error())
		return
	}
	printSet(w, nodes)
}

func printSet(w io.Writer, nodes [][4]int) {
	tw := tabwriter.NewWriter(w, 0, 0, 0, ' ', 0)
	for _, n := range nodes {
		if n[0] > 1 {
			fmt.Fprintf(tw, "%d\t[%d\t] ? \t%d\t : %d\n", n[0], n[1], n[2], n[3])
		}
	}
	tw.Flush()
}

// PrintDot writes a DOT-format description of every node reachable from
// roots (from the referenced nodes, as in Allnodes, if roots is empty) to
// filename, or to standard
// output when filename is "-".
func (m *Manager) PrintDot(filename string, roots ...Handle) error {
	var out *os.File
	var err error
	if filename == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(filename)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	w := bufio.NewWriter(out)
	if mesg := m.Error(); mesg != "" {
		fmt.Fprintf(w, "Error: %s\n", mesg)
		w.Flush()
		return fmt.Errorf(mesg)
	}
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "1 [shape=box, label=\"1\", style=filled, shape=box, height=0.3, width=0.3];")
	_ = m.Allnodes(func(id, level, low, high int) error {
		if id > 1 {
			fmt.Fprintf(w, "%d %s\n", id, dotlabel(id, level))
			if low != 0 {
				fmt.Fprintf(w, "%d -> %d [style=dotted];\n", id, low)
			}
			if high != 0 {
				fmt.Fprintf(w, "%d -> %d [style=filled];\n", id, high)
			}
		}
		return nil
	}, roots...)
	fmt.Fprintln(w, "}")
	w.Flush()
	return nil
}

func dotlabel(a int, b int) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%d</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, b, a)
}
