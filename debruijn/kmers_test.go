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
	"io"
	"testing"
)

type sliceSource struct {
	reads []string
	index int
}

func (s *sliceSource) ReadSequence() (string, error) {
	if s.index >= len(s.reads) {
		return "", io.EOF
	}
	read := s.reads[s.index]
	s.index++
	return read, nil
}

type failingSource struct{}

func (failingSource) ReadSequence() (string, error) {
	return "", errors.New("read failure")
}

func kmersEqual(kmers1, kmers2 map[string]int) bool {
	if len(kmers1) != len(kmers2) {
		return false
	}
	for kmer, count := range kmers1 {
		if kmers2[kmer] != count {
			return false
		}
	}
	return true
}

func TestCountKmers(t *testing.T) {
	kmers, err := CountKmers(&sliceSource{reads: []string{"ACGTACGA"}}, 4)
	if err != nil {
		t.Error("CountKmers 1 failed")
	}
	if !kmersEqual(kmers, map[string]int{"ACGT": 1, "CGTA": 1, "GTAC": 1, "TACG": 1, "ACGA": 1}) {
		t.Error("CountKmers 2 failed")
	}
	kmers, err = CountKmers(&sliceSource{reads: []string{"TCAGACTG", "TCAGACTG", "TCATACTG"}}, 4)
	if err != nil {
		t.Error("CountKmers 3 failed")
	}
	if !kmersEqual(kmers, map[string]int{
		"TCAG": 2, "CAGA": 2, "AGAC": 2, "GACT": 2, "ACTG": 3,
		"TCAT": 1, "CATA": 1, "ATAC": 1, "TACT": 1,
	}) {
		t.Error("CountKmers 4 failed")
	}
	// reads shorter than k contribute nothing
	kmers, err = CountKmers(&sliceSource{reads: []string{"ACG", "", "TCAG"}}, 4)
	if err != nil {
		t.Error("CountKmers 5 failed")
	}
	if !kmersEqual(kmers, map[string]int{"TCAG": 1}) {
		t.Error("CountKmers 6 failed")
	}
	kmers, err = CountKmers(&sliceSource{}, 4)
	if err != nil || len(kmers) != 0 {
		t.Error("CountKmers 7 failed")
	}
	if _, err = CountKmers(failingSource{}, 4); err == nil {
		t.Error("CountKmers 8 failed")
	}
}

func TestCountKmersTotal(t *testing.T) {
	reads := []string{"TCAGACTG", "TCAGACTG", "GGAGACTG", "ACGTACGA", "ACG"}
	kmers, err := CountKmers(&sliceSource{reads: reads}, 4)
	if err != nil {
		t.Error("CountKmersTotal 1 failed")
	}
	total := 0
	for _, count := range kmers {
		total += count
	}
	expected := 0
	for _, read := range reads {
		if len(read) >= 4 {
			expected += len(read) - 4 + 1
		}
	}
	if total != expected {
		t.Error("CountKmersTotal 2 failed")
	}
}

func TestBuildGraph(t *testing.T) {
	g := BuildGraph(map[string]int{
		"TCAG": 2, "CAGA": 2, "AGAC": 2, "GACT": 2, "ACTG": 3,
		"TCAT": 1, "CATA": 1, "ATAC": 1, "TACT": 1,
	}, 4)
	if g.NofNodes() != 9 {
		t.Error("BuildGraph 1 failed")
	}
	if g.NofEdges() != 9 {
		t.Error("BuildGraph 2 failed")
	}
	source, ok := g.ids["GAC"]
	if !ok {
		t.Error("BuildGraph 3 failed")
	}
	target, ok := g.ids["ACT"]
	if !ok {
		t.Error("BuildGraph 4 failed")
	}
	edge, ok := g.getOutgoingEdge(source.id, target.id)
	if !ok || edge.weight != 2 {
		t.Error("BuildGraph 5 failed")
	}
	if _, ok := g.getOutgoingEdge(target.id, source.id); ok {
		t.Error("BuildGraph 6 failed")
	}
	starting := g.startingNodes()
	if len(starting) != 1 || starting[0].bases != "TCA" {
		t.Error("BuildGraph 7 failed")
	}
	sinks := g.sinkNodes()
	if len(sinks) != 1 || sinks[0].bases != "CTG" {
		t.Error("BuildGraph 8 failed")
	}
}

func TestBuildGraphDeterministic(t *testing.T) {
	kmers := map[string]int{
		"TCAG": 2, "CAGA": 2, "AGAC": 2, "GACT": 2, "ACTG": 3,
		"TCAT": 1, "CATA": 1, "ATAC": 1, "TACT": 1,
	}
	g1 := BuildGraph(kmers, 4)
	g2 := BuildGraph(kmers, 4)
	for bases, node1 := range g1.ids {
		node2, ok := g2.ids[bases]
		if !ok || node1.id != node2.id {
			t.Error("BuildGraphDeterministic 1 failed")
		}
		edges1 := g1.out[node1.id]
		edges2 := g2.out[node2.id]
		if len(edges1) != len(edges2) {
			t.Error("BuildGraphDeterministic 2 failed")
		}
		for i, edge1 := range edges1 {
			if edge1.id != edges2[i].id || edge1.weight != edges2[i].weight {
				t.Error("BuildGraphDeterministic 3 failed")
			}
		}
	}
}
