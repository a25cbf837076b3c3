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
	"errors"
	"fmt"

	"github.com/willf/bitset"

	"gonum.org/v1/gonum/stat"
)

// ErrTooManyPaths is reported when a single query would enumerate
// more simple paths than the configured bound.
var ErrTooManyPaths = errors.New("too many simple paths")

func (g *Graph) newNodeSet() *bitset.BitSet {
	return bitset.New(uint(g.nodesID) + 1)
}

// reach returns the set of nodes reachable from start by following
// the given adjacency, including start itself.
func (g *Graph) reach(start int32, edges map[int32][]*edgeInfo) *bitset.BitSet {
	visited := g.newNodeSet()
	visited.Set(uint(start))
	pending := []int32{start}
	for len(pending) > 0 {
		last := len(pending) - 1
		node := pending[last]
		pending = pending[:last]
		for _, edge := range edges[node] {
			if !visited.Test(uint(edge.id)) {
				visited.Set(uint(edge.id))
				pending = append(pending, edge.id)
			}
		}
	}
	return visited
}

func (g *Graph) ancestors(node int32) *bitset.BitSet {
	return g.reach(node, g.in)
}

func (g *Graph) descendants(node int32) *bitset.BitSet {
	return g.reach(node, g.out)
}

// hasPath reports whether a directed path from one node to the other
// exists. A node always reaches itself.
func (g *Graph) hasPath(from, to int32) bool {
	return g.descendants(from).Test(uint(to))
}

// lowestCommonAncestor returns a common ancestor of the two nodes of
// which no other common ancestor is a proper descendant. A node counts
// as its own ancestor. When several common ancestors qualify, the one
// with the smallest id is returned, so the choice is reproducible.
func (g *Graph) lowestCommonAncestor(node1, node2 int32) (*nodeInfo, bool) {
	common := g.ancestors(node1).Intersection(g.ancestors(node2))
	for id, ok := common.NextSet(0); ok; id, ok = common.NextSet(id + 1) {
		lowest := true
		descendants := g.descendants(int32(id))
		for other, ok := common.NextSet(0); ok; other, ok = common.NextSet(other + 1) {
			if other != id && descendants.Test(other) {
				lowest = false
				break
			}
		}
		if lowest {
			return g.nodes[int32(id)], true
		}
	}
	return nil, false
}

// A pathEnumerator lazily produces all simple directed paths between
// two nodes, by depth-first search in adjacency order. The order of
// the produced paths only depends on the order in which edges were
// inserted into the graph, which keeps downstream tie-breaks
// reproducible.
type pathEnumerator struct {
	g       *Graph
	to      int32
	path    []int32
	edgeIdx []int
	visited *bitset.BitSet
}

func (g *Graph) simplePaths(from, to int32) *pathEnumerator {
	e := &pathEnumerator{g: g, to: to, visited: g.newNodeSet()}
	e.push(from)
	return e
}

func (e *pathEnumerator) push(id int32) {
	e.path = append(e.path, id)
	e.edgeIdx = append(e.edgeIdx, 0)
	e.visited.Set(uint(id))
}

func (e *pathEnumerator) pop() {
	last := len(e.path) - 1
	e.visited.Clear(uint(e.path[last]))
	e.path = e.path[:last]
	e.edgeIdx = e.edgeIdx[:last]
}

// Next returns the next simple path, or false when all paths have
// been produced. Paths have at least 2 distinct nodes, so a query
// with equal endpoints produces nothing.
func (e *pathEnumerator) Next() ([]int32, bool) {
	for len(e.path) > 0 {
		last := len(e.path) - 1
		if current := e.path[last]; current == e.to && last > 0 {
			result := append([]int32(nil), e.path...)
			e.pop()
			return result, true
		} else if edges := e.g.out[current]; e.edgeIdx[last] < len(edges) {
			edge := edges[e.edgeIdx[last]]
			e.edgeIdx[last]++
			if !e.visited.Test(uint(edge.id)) {
				e.push(edge.id)
			}
		} else {
			e.pop()
		}
	}
	return nil, false
}

// allSimplePaths collects every simple path between the two nodes,
// failing when the configured bound is exceeded. The bound only
// rejects pathological queries; on well-formed graphs the result is
// the complete path set.
func (g *Graph) allSimplePaths(from, to int32) (paths [][]int32, err error) {
	e := g.simplePaths(from, to)
	for path, ok := e.Next(); ok; path, ok = e.Next() {
		if len(paths) >= g.maxPaths {
			return nil, fmt.Errorf("%w between %v and %v (max %v)",
				ErrTooManyPaths, g.nodes[from].bases, g.nodes[to].bases, g.maxPaths)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// pathAverageWeight computes the mean weight over all edges of the
// subgraph induced by the path's nodes.
func (g *Graph) pathAverageWeight(path []int32) float64 {
	inPath := g.newNodeSet()
	for _, id := range path {
		inPath.Set(uint(id))
	}
	var weights []float64
	for _, id := range path {
		for _, edge := range g.out[id] {
			if inPath.Test(uint(edge.id)) {
				weights = append(weights, float64(edge.weight))
			}
		}
	}
	return stat.Mean(weights, nil)
}
