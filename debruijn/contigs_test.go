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
	"bytes"
	"strings"
	"testing"

	"github.com/exascience/elasm/internal"
)

func TestContigs(t *testing.T) {
	g := BuildGraph(map[string]int{
		"TCAG": 1, "CAGA": 1, "AGAC": 1, "GACT": 1, "ACTG": 1,
	}, 4)
	contigs, err := g.Contigs()
	if err != nil {
		t.Error("Contigs 1 failed")
	}
	if len(contigs) != 1 || contigs[0].Sequence != "TCAGACTG" || contigs[0].Length != 8 {
		t.Error("Contigs 2 failed")
	}
}

func TestContigsBubble(t *testing.T) {
	// without simplification, both routes through the bubble yield a
	// contig, in path enumeration order
	g := bubbleGraph()
	contigs, err := g.Contigs()
	if err != nil {
		t.Error("ContigsBubble 1 failed")
	}
	if len(contigs) != 2 {
		t.Error("ContigsBubble 2 failed")
	}
	if contigs[0].Sequence != "TCAGACTG" || contigs[1].Sequence != "TCATACTG" {
		t.Error("ContigsBubble 3 failed")
	}
}

func TestAssemble(t *testing.T) {
	kmers, err := CountKmers(&sliceSource{reads: []string{"TCAGACTG", "TCAGACTG", "TCATACTG"}}, 4)
	if err != nil {
		t.Error("Assemble 1 failed")
	}
	g := BuildGraph(kmers, 4)
	rng := internal.NewRand(9001)
	if err := g.SimplifyBubbles(rng); err != nil {
		t.Error("Assemble 2 failed")
	}
	if err := g.SolveEntryTips(rng); err != nil {
		t.Error("Assemble 3 failed")
	}
	if err := g.SolveOutTips(rng); err != nil {
		t.Error("Assemble 4 failed")
	}
	contigs, err := g.Contigs()
	if err != nil {
		t.Error("Assemble 5 failed")
	}
	if len(contigs) != 1 || contigs[0].Sequence != "TCAGACTG" {
		t.Error("Assemble 6 failed")
	}
}

func TestWriteDot(t *testing.T) {
	g := BuildGraph(map[string]int{"TCAG": 2, "CAGA": 4}, 4)
	var buf bytes.Buffer
	if err := g.WriteDot(&buf); err != nil {
		t.Error("WriteDot 1 failed")
	}
	dot := buf.String()
	if !strings.HasPrefix(dot, "digraph debruijn {") {
		t.Error("WriteDot 2 failed")
	}
	if !strings.Contains(dot, `"TCA" -> "CAG" [label=2, style=dashed];`) {
		t.Error("WriteDot 3 failed")
	}
	if !strings.Contains(dot, `"CAG" -> "AGA" [label=4, style=solid];`) {
		t.Error("WriteDot 4 failed")
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Error("WriteDot 5 failed")
	}
}
