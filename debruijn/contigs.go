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

import "strings"

// A Contig is a contiguous sequence assembled from a simple path
// through the graph, paired with its length.
type Contig struct {
	Sequence string
	Length   int
}

// Contigs assembles one contig per simple path between every current
// source node and every current sink node connected by a directed
// path. A contig consists of the full (k-1)-mer of the path's first
// node followed by the last character of every subsequent node. When
// several paths connect the same source/sink pair, each yields its
// own contig. The graph is not modified.
func (g *Graph) Contigs() (contigs []Contig, err error) {
	sinkNodes := g.sinkNodes()
	for _, start := range g.startingNodes() {
		for _, end := range sinkNodes {
			if start.id == end.id || !g.hasPath(start.id, end.id) {
				continue
			}
			paths, err := g.allSimplePaths(start.id, end.id)
			if err != nil {
				return nil, err
			}
			for _, path := range paths {
				var sequence strings.Builder
				sequence.WriteString(g.nodes[path[0]].bases)
				for _, id := range path[1:] {
					bases := g.nodes[id].bases
					sequence.WriteByte(bases[len(bases)-1])
				}
				contigs = append(contigs, Contig{
					Sequence: sequence.String(),
					Length:   sequence.Len(),
				})
			}
		}
	}
	return contigs, nil
}
