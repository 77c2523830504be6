// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

import (
	"fmt"
	"io"
	"strings"
)

// GCStats returns a per-collection history of arena occupancy, the
// counterpart to Stats' single snapshot, in the PrintStats idiom of
// dalzilio-rudd/stdio.go's gcstats.
func (m *Manager) GCStats() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# of GC:    %d\n", len(m.gcHistory))
	for i, g := range m.gcHistory {
		used := g.total - g.free
		fmt.Fprintf(&b, "  gc %d: allocated=%d used=%d free=%d\n", i, g.total, used, g.free)
	}
	return b.String()
}

// Dot writes a Graphviz .dot rendering of the DAG reachable from roots to
// w. There is a single terminal node (this package's constants share one
// arena slot, distinguished only by the complement bit on the edge
// pointing at it), so unlike a two-terminal package's dot output there is
// no separate "0" box: a negated edge is drawn dashed with a small open
// circle at the arrowhead, following the convention complement-edge BDD
// packages use for exactly this case (grounded on dalzilio-rudd's
// stdio.go print_dot, adapted for the one-terminal representation
// described in original_source/src/BddUtils.cc's node printer).
func (m *Manager) Dot(w io.Writer, roots ...Handle) error {
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, `1 [shape=box, label="1", style=filled, height=0.3, width=0.3];`)

	seen := make(map[uint32]bool)
	var walk func(id ID)
	walk = func(id ID) {
		if id.isConstant() || seen[id.slot()] {
			return
		}
		seen[id.slot()] = true
		n := m.a.at(id.slot())
		v := 0
		if int(n.index) < len(m.index2var) {
			v = m.index2var[n.index]
		}
		fmt.Fprintf(w, "%d [label=<<FONT POINT-SIZE=\"20\">%d</FONT> <FONT POINT-SIZE=\"10\">[%d]</FONT>>];\n",
			id.slot(), v, n.index)
		m.writeDotEdge(w, id.slot(), n.hi, false)
		m.writeDotEdge(w, id.slot(), n.lo, true)
		walk(n.hi)
		walk(n.lo)
	}
	for _, h := range roots {
		if !h.Valid() {
			continue
		}
		walk(h.id())
	}
	fmt.Fprintln(w, "}")
	return nil
}

func (m *Manager) writeDotEdge(w io.Writer, from uint32, to ID, dashed bool) {
	style := "solid"
	if dashed {
		style = "dashed"
	}
	arrow := ""
	if to.isComplement() {
		arrow = ", arrowhead=odot"
	}
	fmt.Fprintf(w, "%d -> %d [style=%s%s];\n", from, to.slot(), style, arrow)
}
