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

// Package debruijn implements contig assembly based on a de Bruijn
// graph. The nodes of the graph are the (k-1)-mers of the input reads;
// a directed edge connects two nodes whenever a k-mer starts with the
// one and ends with the other, weighted by the occurrence count of
// that k-mer across all reads. The graph is simplified in place by
// removing bubbles and tips before the contigs are read off as the
// simple paths between its remaining sources and sinks.
package debruijn

import "sort"

// DefaultMaxPaths is the default bound on the number of simple paths
// enumerated between a pair of nodes.
const DefaultMaxPaths = 65536

type (
	nodeInfo struct {
		id    int32
		bases string
	}

	edgeInfo struct {
		id     int32 // the node at the other end
		weight int32
	}

	// A Graph is a de Bruijn graph of (k-1)-mers. Node strings are
	// interned to int32 ids; equal strings always denote the same
	// node. Adjacency slices preserve insertion order, so graphs
	// built from the same k-mer multiset behave identically.
	Graph struct {
		k        int
		maxPaths int
		nodesID  int32
		nodes    map[int32]*nodeInfo
		ids      map[string]*nodeInfo
		out      map[int32][]*edgeInfo
		in       map[int32][]*edgeInfo
	}
)

// NewGraph returns an empty de Bruijn graph for the given k-mer length.
func NewGraph(kmerSize int) *Graph {
	return &Graph{
		k:        kmerSize,
		maxPaths: DefaultMaxPaths,
		nodes:    make(map[int32]*nodeInfo),
		ids:      make(map[string]*nodeInfo),
		out:      make(map[int32][]*edgeInfo),
		in:       make(map[int32][]*edgeInfo),
	}
}

// SetMaxPaths bounds the number of simple paths enumerated per query.
func (g *Graph) SetMaxPaths(maxPaths int) {
	g.maxPaths = maxPaths
}

// NofNodes returns the current number of nodes.
func (g *Graph) NofNodes() int {
	return len(g.nodes)
}

// NofEdges returns the current number of edges.
func (g *Graph) NofEdges() (result int) {
	for _, edges := range g.out {
		result += len(edges)
	}
	return
}

func (g *Graph) intern(bases string) *nodeInfo {
	if node, ok := g.ids[bases]; ok {
		return node
	}
	g.nodesID++
	node := &nodeInfo{id: g.nodesID, bases: bases}
	g.nodes[node.id] = node
	g.ids[bases] = node
	return node
}

func (g *Graph) getOutgoingEdge(source, target int32) (*edgeInfo, bool) {
	for _, edge := range g.out[source] {
		if edge.id == target {
			return edge, true
		}
	}
	return nil, false
}

// addEdge creates the edge source->target, or overwrites its weight if
// it already exists. At most one edge exists per ordered node pair.
func (g *Graph) addEdge(source, target *nodeInfo, weight int32) {
	if edge, ok := g.getOutgoingEdge(source.id, target.id); ok {
		edge.weight = weight
		for _, incoming := range g.in[target.id] {
			if incoming.id == source.id {
				incoming.weight = weight
				break
			}
		}
		return
	}
	g.out[source.id] = append(g.out[source.id], &edgeInfo{id: target.id, weight: weight})
	g.in[target.id] = append(g.in[target.id], &edgeInfo{id: source.id, weight: weight})
}

func (g *Graph) setOutgoingEdges(id int32, edges []*edgeInfo) {
	if len(edges) == 0 {
		delete(g.out, id)
	} else {
		g.out[id] = edges
	}
}

func (g *Graph) setIncomingEdges(id int32, edges []*edgeInfo) {
	if len(edges) == 0 {
		delete(g.in, id)
	} else {
		g.in[id] = edges
	}
}

func (g *Graph) removeEdge(source, target int32) {
	var newOutgoing []*edgeInfo
	for _, edge := range g.out[source] {
		if edge.id != target {
			newOutgoing = append(newOutgoing, edge)
		}
	}
	g.setOutgoingEdges(source, newOutgoing)
	var newIncoming []*edgeInfo
	for _, edge := range g.in[target] {
		if edge.id != source {
			newIncoming = append(newIncoming, edge)
		}
	}
	g.setIncomingEdges(target, newIncoming)
}

// removeNode detaches a node from all its neighbors and deletes it.
// Neighbors that end up isolated stay in the graph; they show up as
// fresh sources and sinks when the source/sink sets are recomputed.
func (g *Graph) removeNode(node *nodeInfo) {
	for _, edge := range g.out[node.id] {
		var newIncoming []*edgeInfo
		for _, incoming := range g.in[edge.id] {
			if incoming.id != node.id {
				newIncoming = append(newIncoming, incoming)
			}
		}
		g.setIncomingEdges(edge.id, newIncoming)
	}
	delete(g.out, node.id)
	for _, edge := range g.in[node.id] {
		var newOutgoing []*edgeInfo
		for _, outgoing := range g.out[edge.id] {
			if outgoing.id != node.id {
				newOutgoing = append(newOutgoing, outgoing)
			}
		}
		g.setOutgoingEdges(edge.id, newOutgoing)
	}
	delete(g.in, node.id)
	delete(g.nodes, node.id)
	delete(g.ids, node.bases)
	node.id = -1
}

func (g *Graph) nodeInDegree(id int32) int {
	return len(g.in[id])
}

func (g *Graph) nodeOutDegree(id int32) int {
	return len(g.out[id])
}

func (g *Graph) getNodes(predicate func(*nodeInfo) bool) (result []*nodeInfo) {
	for _, node := range g.nodes {
		if predicate(node) {
			result = append(result, node)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].id < result[j].id
	})
	return
}

func (g *Graph) allNodes() []*nodeInfo {
	result := make([]*nodeInfo, 0, len(g.nodes))
	for _, node := range g.nodes {
		result = append(result, node)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].id < result[j].id
	})
	return result
}

// startingNodes returns the nodes without predecessors, in id order.
// The result is a query against current topology; it must be
// recomputed after every structural change.
func (g *Graph) startingNodes() []*nodeInfo {
	return g.getNodes(func(node *nodeInfo) bool {
		return g.nodeInDegree(node.id) == 0
	})
}

// sinkNodes returns the nodes without successors, in id order.
func (g *Graph) sinkNodes() []*nodeInfo {
	return g.getNodes(func(node *nodeInfo) bool {
		return g.nodeOutDegree(node.id) == 0
	})
}
