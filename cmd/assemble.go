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

// Package cmd implements the commands of the elasm binary.
package cmd

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/exascience/elasm/debruijn"
	"github.com/exascience/elasm/fasta"
	"github.com/exascience/elasm/fastq"
	"github.com/exascience/elasm/internal"
)

// AssembleHelp is the help string for this command.
const AssembleHelp = "Assemble parameters:\n" +
	"elasm assemble fastq-file contigs-file\n" +
	"[--kmer-size nr]\n" +
	"[--seed nr]\n" +
	"[--max-paths nr]\n" +
	"[--dot-file file]\n" +
	"[--nr-of-threads nr]\n" +
	"[--timed]\n" +
	"[--log-path path]\n" +
	"[--profile prefix]\n"

// Assemble implements the elasm assemble command.
func Assemble() error {
	var (
		kmerSize, maxPaths, nrOfThreads int
		seed                            int64
		dotFile, logPath, profile       string
		timed                           bool
	)

	var flags flag.FlagSet

	flags.IntVar(&kmerSize, "kmer-size", 22, "k-mer size for building the graph")
	flags.Int64Var(&seed, "seed", 9001, "seed for the random number generator")
	flags.IntVar(&maxPaths, "max-paths", debruijn.DefaultMaxPaths, "maximum number of simple paths enumerated per node pair")
	flags.StringVar(&dotFile, "dot-file", "", "write the simplified graph in DOT format to this file")
	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")

	parseFlags(flags, 4, AssembleHelp)

	input := getFilename(os.Args[2], AssembleHelp)
	output := getFilename(os.Args[3], AssembleHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	if !checkCreate("", output) {
		sanityChecksFailed = true
	}
	if dotFile != "" && !checkCreate("--dot-file", dotFile) {
		sanityChecksFailed = true
	}

	if kmerSize < 2 {
		sanityChecksFailed = true
		log.Println("Error: Invalid kmer-size: ", kmerSize)
	}

	if maxPaths < 1 {
		sanityChecksFailed = true
		log.Println("Error: Invalid max-paths: ", maxPaths)
	}

	if nrOfThreads < 0 {
		sanityChecksFailed = true
		log.Println("Error: Invalid nr-of-threads: ", nrOfThreads)
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, AssembleHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " assemble ", input, " ", output)
	fmt.Fprint(&command, " --kmer-size ", kmerSize)
	fmt.Fprint(&command, " --seed ", seed)
	fmt.Fprint(&command, " --max-paths ", maxPaths)
	if dotFile != "" {
		fmt.Fprint(&command, " --dot-file ", dotFile)
	}
	if nrOfThreads > 0 {
		runtime.GOMAXPROCS(nrOfThreads)
		fmt.Fprint(&command, " --nr-of-threads ", nrOfThreads)
	}
	if timed {
		fmt.Fprint(&command, " --timed")
	}
	if logPath != "" {
		fmt.Fprint(&command, " --log-path ", logPath)
	}
	if profile != "" {
		fmt.Fprint(&command, " --profile ", profile)
	}

	// executing command

	log.Println("Executing command:\n", command.String())

	var kmers map[string]int
	var err error

	timedRun(timed, profile, "Counting k-mers.", 1, func() {
		var reads *fastq.InputFile
		if reads, err = fastq.Open(input); err != nil {
			return
		}
		defer internal.Close(reads)
		kmers, err = debruijn.CountKmers(reads, kmerSize)
	})
	if err != nil {
		return err
	}

	var graph *debruijn.Graph

	timedRun(timed, profile, "Building the graph.", 2, func() {
		graph = debruijn.BuildGraph(kmers, kmerSize)
		graph.SetMaxPaths(maxPaths)
	})

	log.Println("Graph has", graph.NofNodes(), "nodes and", graph.NofEdges(), "edges.")

	rng := internal.NewRand(seed)

	timedRun(timed, profile, "Simplifying bubbles.", 3, func() {
		err = graph.SimplifyBubbles(rng)
	})
	if err != nil {
		return err
	}

	timedRun(timed, profile, "Solving entry tips.", 4, func() {
		err = graph.SolveEntryTips(rng)
	})
	if err != nil {
		return err
	}

	timedRun(timed, profile, "Solving out tips.", 5, func() {
		err = graph.SolveOutTips(rng)
	})
	if err != nil {
		return err
	}

	log.Println("Simplified graph has", graph.NofNodes(), "nodes and", graph.NofEdges(), "edges.")

	var contigs []debruijn.Contig

	timedRun(timed, profile, "Extracting contigs.", 6, func() {
		contigs, err = graph.Contigs()
	})
	if err != nil {
		return err
	}

	log.Println("Extracted", len(contigs), "contigs.")

	timedRun(timed, profile, "Writing contigs.", 7, func() {
		err = fasta.WriteContigs(output, contigs)
	})
	if err != nil {
		return err
	}

	if dotFile != "" {
		file := internal.FileCreate(dotFile)
		defer internal.Close(file)
		return graph.WriteDot(file)
	}

	return nil
}
