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
	"context"
	"io"
	"sort"

	"github.com/exascience/pargo/pipeline"
)

// A ReadSource produces a finite sequence of nucleotide strings, one
// per call. It returns io.EOF when the sequence is exhausted. Read
// sources are not restartable.
type ReadSource interface {
	ReadSequence() (string, error)
}

const (
	minReadBatchSize = 512
	maxReadBatchSize = 4096
)

// readBatches adapts a ReadSource to a pargo pipeline source that
// produces batches of reads.
type readBatches struct {
	src   ReadSource
	batch []string
	err   error
}

func (r *readBatches) Err() error {
	return r.err
}

func (r *readBatches) Prepare(_ context.Context) int {
	return -1
}

func (r *readBatches) Fetch(size int) int {
	batch := make([]string, 0, size)
	for len(batch) < size {
		read, err := r.src.ReadSequence()
		if err != nil {
			if err != io.EOF {
				r.err = err
			}
			break
		}
		batch = append(batch, read)
	}
	r.batch = batch
	return len(batch)
}

func (r *readBatches) Data() interface{} {
	return r.batch
}

// CountKmers builds the mapping from k-mer to occurrence count over
// all reads of the given source. A read of length l contributes its
// l-k+1 contiguous substrings of length k; reads shorter than k
// contribute nothing. Counting runs on a parallel pipeline; since
// merging counts is commutative, the result is identical to a
// sequential count. Read-source failures are propagated unchanged.
func CountKmers(src ReadSource, kmerSize int) (map[string]int, error) {
	counts := make(map[string]int)
	source := &readBatches{src: src}
	var p pipeline.Pipeline
	p.Source(source)
	p.SetVariableBatchSize(minReadBatchSize, maxReadBatchSize)
	p.Add(pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
		reads := data.([]string)
		kmers := make(map[string]int)
		for _, read := range reads {
			for i := 0; i <= len(read)-kmerSize; i++ {
				kmers[read[i:i+kmerSize]]++
			}
		}
		return kmers
	})))
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		for kmer, count := range data.(map[string]int) {
			counts[kmer] += count
		}
		return data
	})))
	p.Run()
	if err := p.Err(); err != nil {
		return nil, err
	}
	if err := source.err; err != nil {
		return nil, err
	}
	return counts, nil
}

// BuildGraph turns a k-mer/count mapping into a de Bruijn graph. Every
// distinct k-mer induces exactly one edge from its prefix (k-1)-mer to
// its suffix (k-1)-mer, weighted by its count; the node set is exactly
// the union of all prefixes and suffixes. K-mers are inserted in
// sorted order, so node ids and adjacency orders only depend on the
// contents of the mapping.
func BuildGraph(kmers map[string]int, kmerSize int) *Graph {
	sorted := make([]string, 0, len(kmers))
	for kmer := range kmers {
		sorted = append(sorted, kmer)
	}
	sort.Strings(sorted)
	g := NewGraph(kmerSize)
	for _, kmer := range sorted {
		prefix := g.intern(kmer[:len(kmer)-1])
		suffix := g.intern(kmer[1:])
		g.addEdge(prefix, suffix, int32(kmers[kmer]))
	}
	return g
}
