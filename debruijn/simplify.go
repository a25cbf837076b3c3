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
	"gonum.org/v1/gonum/stat"

	"github.com/exascience/elasm/internal"
)

func firstMaxIndex(values []float64) int {
	best := 0
	for i, value := range values[1:] {
		if value > values[best] {
			best = i + 1
		}
	}
	return best
}

// removePaths removes the nodes of the given paths from the graph.
// The first node of a path is kept unless deleteEntryNode is set, the
// last node unless deleteSinkNode is set. A two-node path with both
// endpoints kept has its connecting edge removed instead; otherwise
// such a path could never be resolved and the simplification loops
// would not reach a fixpoint.
func (g *Graph) removePaths(paths [][]int32, deleteEntryNode, deleteSinkNode bool) {
	for _, path := range paths {
		nodesToRemove := path
		if !deleteEntryNode {
			nodesToRemove = nodesToRemove[1:]
		}
		if !deleteSinkNode {
			nodesToRemove = nodesToRemove[:len(nodesToRemove)-1]
		}
		if len(nodesToRemove) == 0 {
			g.removeEdge(path[0], path[1])
			continue
		}
		for _, id := range nodesToRemove {
			if node, ok := g.nodes[id]; ok {
				g.removeNode(node)
			}
		}
	}
}

// selectBestPath picks exactly one path among competing ones and
// removes all others. The decision rule, applied in order:
// paths with varying average weight are decided by maximal average
// weight; then paths with varying length by maximal length; ties on
// the winning criterion go to the first path in enumeration order.
// Only when all weights and all lengths are equal is the winner drawn
// uniformly from the explicitly seeded generator. At least 2 paths
// are required.
func (g *Graph) selectBestPath(paths [][]int32, lengths []int, avgWeights []float64, rng *internal.Rand, deleteEntryNode, deleteSinkNode bool) {
	var best int
	if stat.StdDev(avgWeights, nil) > 0 {
		best = firstMaxIndex(avgWeights)
	} else {
		floatLengths := make([]float64, len(lengths))
		for i, length := range lengths {
			floatLengths[i] = float64(length)
		}
		if stat.StdDev(floatLengths, nil) > 0 {
			best = firstMaxIndex(floatLengths)
		} else {
			best = int(rng.Int31n(int32(len(paths))))
		}
	}
	losing := make([][]int32, 0, len(paths)-1)
	for i, path := range paths {
		if i != best {
			losing = append(losing, path)
		}
	}
	g.removePaths(losing, deleteEntryNode, deleteSinkNode)
}

// solveBubble resolves the alternative routes between an ancestor and
// a descendant node, keeping only the best one. Interior nodes of the
// losing routes are removed; the two shared endpoints are never
// deleted. Fewer than 2 simple paths between the endpoints means
// there is nothing to resolve. Reports whether the graph shrank.
func (g *Graph) solveBubble(ancestor, node int32, rng *internal.Rand) (bool, error) {
	paths, err := g.allSimplePaths(ancestor, node)
	if err != nil {
		return false, err
	}
	if len(paths) < 2 {
		return false, nil
	}
	lengths := make([]int, len(paths))
	avgWeights := make([]float64, len(paths))
	for i, path := range paths {
		lengths[i] = len(path)
		avgWeights[i] = g.pathAverageWeight(path)
	}
	size := g.NofNodes() + g.NofEdges()
	g.selectBestPath(paths, lengths, avgWeights, rng, false, false)
	return g.NofNodes()+g.NofEdges() < size, nil
}

// SimplifyBubbles removes the short alternate routes that sequencing
// errors introduce between a divergence point and the node where the
// routes reconverge. Whenever a node with at least 2 immediate
// predecessors admits a resolvable bubble below the lowest common
// ancestor of its first two predecessors, the bubble is resolved and
// the scan restarts on the changed topology; the loop stops when a
// full scan finds nothing to resolve. Every resolution strictly
// shrinks the graph, so the loop terminates.
func (g *Graph) SimplifyBubbles(rng *internal.Rand) error {
	for modified := true; modified; {
		modified = false
		for _, node := range g.allNodes() {
			predecessors := g.in[node.id]
			if len(predecessors) < 2 {
				continue
			}
			ancestor, ok := g.lowestCommonAncestor(predecessors[0].id, predecessors[1].id)
			if !ok {
				continue
			}
			resolved, err := g.solveBubble(ancestor.id, node.id, rng)
			if err != nil {
				return err
			}
			if resolved {
				modified = true
				break
			}
		}
	}
	return nil
}

// resolveEntryTip locates one node with at least 2 immediate
// predecessors that is reachable from several of the given starting
// nodes, and keeps only the best of the competing entry paths. The
// losing paths lose their starting node and interior nodes; the
// convergence node is kept. Reports whether a resolution happened.
func (g *Graph) resolveEntryTip(startingNodes []*nodeInfo, rng *internal.Rand) (bool, error) {
	for _, node := range g.allNodes() {
		if len(g.in[node.id]) < 2 {
			continue
		}
		var paths [][]int32
		var lengths []int
		var avgWeights []float64
		for _, start := range startingNodes {
			if start.id == node.id || !g.hasPath(start.id, node.id) {
				continue
			}
			found, err := g.allSimplePaths(start.id, node.id)
			if err != nil {
				return false, err
			}
			for _, path := range found {
				if len(path) < 2 {
					continue
				}
				paths = append(paths, path)
				lengths = append(lengths, len(path))
				avgWeights = append(avgWeights, g.pathAverageWeight(path))
			}
		}
		if len(paths) < 2 {
			continue
		}
		g.selectBestPath(paths, lengths, avgWeights, rng, true, false)
		return true, nil
	}
	return false, nil
}

// SolveEntryTips removes dead-end entry branches: short paths from a
// source node that merge into the main path. After every resolution
// the source-node set is recomputed from the changed topology and the
// scan re-enters from the top, since tip removal may expose new tip
// patterns. Each resolution removes at least the losing entry node,
// so the loop terminates.
func (g *Graph) SolveEntryTips(rng *internal.Rand) error {
	for {
		resolved, err := g.resolveEntryTip(g.startingNodes(), rng)
		if err != nil {
			return err
		}
		if !resolved {
			return nil
		}
	}
}

// resolveOutTip is the mirror image of resolveEntryTip: it locates
// one node with at least 2 immediate successors that reaches several
// of the given sink nodes, and keeps only the best of the competing
// exit paths. The losing paths lose their sink node and interior
// nodes; the divergence node is kept.
func (g *Graph) resolveOutTip(sinkNodes []*nodeInfo, rng *internal.Rand) (bool, error) {
	for _, node := range g.allNodes() {
		if len(g.out[node.id]) < 2 {
			continue
		}
		var paths [][]int32
		var lengths []int
		var avgWeights []float64
		for _, end := range sinkNodes {
			if end.id == node.id || !g.hasPath(node.id, end.id) {
				continue
			}
			found, err := g.allSimplePaths(node.id, end.id)
			if err != nil {
				return false, err
			}
			for _, path := range found {
				if len(path) < 2 {
					continue
				}
				paths = append(paths, path)
				lengths = append(lengths, len(path))
				avgWeights = append(avgWeights, g.pathAverageWeight(path))
			}
		}
		if len(paths) < 2 {
			continue
		}
		g.selectBestPath(paths, lengths, avgWeights, rng, false, true)
		return true, nil
	}
	return false, nil
}

// SolveOutTips removes dead-end exit branches: short paths that
// diverge from the main path and run into a sink node. The sink-node
// set is recomputed after every resolution, and the scan restarts
// until a full scan finds nothing to resolve.
func (g *Graph) SolveOutTips(rng *internal.Rand) error {
	for {
		resolved, err := g.resolveOutTip(g.sinkNodes(), rng)
		if err != nil {
			return err
		}
		if !resolved {
			return nil
		}
	}
}
