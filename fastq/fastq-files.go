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

// Package fastq provides a streaming reader for FASTQ files that
// yields one nucleotide sequence per record, hiding the 4-line
// record framing from its callers.
package fastq

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// An InputFile represents a FASTQ file open for reading.
type InputFile struct {
	file   *os.File
	reader *bufio.Reader
}

// Open opens a FASTQ file for reading.
func Open(filename string) (*InputFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	return &InputFile{
		file:   file,
		reader: bufio.NewReader(file),
	}, nil
}

// ReadSequence returns the sequence line of the next FASTQ record.
// Each record consists of an identifier line, the sequence line, a
// separator line, and a quality line; only the sequence is returned.
// A blank identifier line or the end of the file ends the stream with
// io.EOF. A record with an identifier but no sequence is an error.
func (f *InputFile) ReadSequence() (string, error) {
	identifier, err := f.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", io.EOF
	}
	line, err := f.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	sequence := strings.TrimSpace(line)
	if sequence == "" {
		return "", fmt.Errorf("truncated fastq record %v in %v", identifier, f.file.Name())
	}
	// skip the separator and quality lines
	if _, err := f.reader.ReadString('\n'); err != nil && err != io.EOF {
		return "", err
	}
	if _, err := f.reader.ReadString('\n'); err != nil && err != io.EOF {
		return "", err
	}
	return sequence, nil
}

// Close closes the FASTQ file.
func (f *InputFile) Close() error {
	return f.file.Close()
}
