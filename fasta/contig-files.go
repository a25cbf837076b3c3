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

// Package fasta serializes assembled contigs to FASTA files.
package fasta

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/exascience/elasm/debruijn"
)

// LineWidth is the column at which contig sequences are wrapped.
const LineWidth = 80

// WriteContigs writes the contigs to a FASTA file. Every contig gets
// a header line of the form >contig_<index> len=<length>, with the
// 0-based index reflecting emission order, followed by its sequence
// wrapped at 80 characters per line. The contigs are first written to
// a uniquely named temporary file next to the target, which is
// renamed into place when the write succeeds.
func WriteContigs(filename string, contigs []debruijn.Contig) (err error) {
	tmpname := filepath.Join(
		filepath.Dir(filename),
		fmt.Sprintf(".%v-%v.tmp", filepath.Base(filename), uuid.New()),
	)
	file, err := os.Create(tmpname)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmpname)
		}
	}()
	out := bufio.NewWriter(file)
	for index, contig := range contigs {
		fmt.Fprintf(out, ">contig_%d len=%d\n", index, contig.Length)
		sequence := contig.Sequence
		for start := 0; start < len(sequence); start += LineWidth {
			end := start + LineWidth
			if end > len(sequence) {
				end = len(sequence)
			}
			out.WriteString(sequence[start:end])
			out.WriteByte('\n')
		}
	}
	if err = out.Flush(); err != nil {
		return err
	}
	if err = file.Close(); err != nil {
		return err
	}
	return os.Rename(tmpname, filename)
}
