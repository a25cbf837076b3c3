// elAsm: a high-performance tool for de novo assembly of sequencing reads.
// Copyright (c) 2021 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elasm/blob/master/LICENSE.txt>.

package debruijn

import (
	"bufio"
	"fmt"
	"io"
)

// highWeight separates edges that are drawn solid from edges that
// are drawn dashed in the DOT export.
const highWeight = 3

// WriteDot writes the graph in Graphviz DOT format, for inspection
// with the graphviz tools. Edges with weight above 3 are solid, the
// rest dashed. Layout is left to graphviz.
func (g *Graph) WriteDot(w io.Writer) error {
	out := bufio.NewWriter(w)
	fmt.Fprintln(out, "digraph debruijn {")
	fmt.Fprintln(out, "\tnode [shape=point];")
	for _, node := range g.allNodes() {
		for _, edge := range g.out[node.id] {
			style := "dashed"
			if edge.weight > highWeight {
				style = "solid"
			}
			fmt.Fprintf(out, "\t%q -> %q [label=%d, style=%s];\n",
				node.bases, g.nodes[edge.id].bases, edge.weight, style)
		}
	}
	fmt.Fprintln(out, "}")
	return out.Flush()
}
