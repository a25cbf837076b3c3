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

package fasta

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/exascience/elasm/debruijn"
)

func TestWriteContigs(t *testing.T) {
	long := strings.Repeat("ACGT", 25)
	filename := filepath.Join(t.TempDir(), "contigs.fasta")
	err := WriteContigs(filename, []debruijn.Contig{
		{Sequence: "TCAGACTG", Length: 8},
		{Sequence: long, Length: 100},
	})
	if err != nil {
		t.Fatal(err)
	}
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	expected := ">contig_0 len=8\n" +
		"TCAGACTG\n" +
		">contig_1 len=100\n" +
		long[:80] + "\n" +
		long[80:] + "\n"
	if string(contents) != expected {
		t.Error("WriteContigs 1 failed")
	}
	// no temporary files left behind
	files, err := ioutil.ReadDir(filepath.Dir(filename))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Error("WriteContigs 2 failed")
	}
}

func TestWriteContigsEmpty(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "contigs.fasta")
	if err := WriteContigs(filename, nil); err != nil {
		t.Fatal(err)
	}
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 0 {
		t.Error("WriteContigsEmpty failed")
	}
}
