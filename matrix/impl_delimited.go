// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Read and write headerless delimited numeric matrices: one matrix row per
//     line, values separated by commas or runs of whitespace.
//
// Format rules (ReadDelimited):
//   - Blank lines are ignored; surrounding whitespace is trimmed.
//   - A line containing a comma is split on commas (each cell trimmed, empty
//     cells rejected); otherwise it is split on whitespace.
//   - Every row must have the same number of values (rectangular).
//
// Format rules (WriteDelimited):
//   - strconv 'g' formatting, DefaultPrecision=-1 (shortest exact), '\n' row terminator.

package matrix

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const (
	opReadDelimited  = "ReadDelimited"
	opWriteDelimited = "WriteDelimited"

	// maxLineBytes bounds a single row; connectomes with thousands of nodes fit easily.
	maxLineBytes = 16 << 20
)

// ReadDelimited parses a rectangular numeric matrix from r.
// Implementation:
//   - Stage 1: scan lines, split each into cells, parse float64 values.
//   - Stage 2: enforce rectangular shape and the numeric policy.
//   - Stage 3: materialize a Dense via NewDenseFromRows.
//
// Errors:
//   - ErrMalformed for empty input, ragged rows, or unparsable cells.
//   - ErrNaNInf for non-finite values when validation is enabled (default).
//   - Underlying reader errors, wrapped.
//
// Complexity:
//   - Time O(bytes), Space O(r*c).
func ReadDelimited(r io.Reader, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var rows [][]float64
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		cells := splitCells(text)
		row := make([]float64, len(cells))
		for k, cell := range cells {
			if cell == "" {
				return nil, fmt.Errorf("%s: line %d, column %d: empty cell: %w", opReadDelimited, line, k+1, ErrMalformed)
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: line %d, column %d: %q: %w", opReadDelimited, line, k+1, cell, ErrMalformed)
			}
			if o.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
				return nil, fmt.Errorf("%s: line %d, column %d: %w", opReadDelimited, line, k+1, ErrNaNInf)
			}
			row[k] = v
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%s: line %d has %d values, want %d: %w", opReadDelimited, line, len(row), len(rows[0]), ErrMalformed)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", opReadDelimited, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: no rows: %w", opReadDelimited, ErrMalformed)
	}

	return NewDenseFromRows(rows, opts...)
}

// splitCells splits on commas when present, otherwise on whitespace.
func splitCells(text string) []string {
	if !strings.ContainsRune(text, ',') {
		return strings.Fields(text)
	}
	cells := strings.Split(text, ",")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}

	return cells
}

// WriteDelimited writes m row by row using the configured delimiter and precision.
//
// Errors:
//   - ErrNilMatrix, wrapped At errors, writer errors.
//
// Complexity:
//   - Time O(r*c), Space O(c) scratch.
func WriteDelimited(w io.Writer, m Matrix, opts ...Option) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opWriteDelimited, err)
	}
	o := gatherOptions(opts...)
	bw := bufio.NewWriter(w)
	delim := string(o.delimiter)

	var buf []byte
	var i, j int
	var v float64
	var err error
	for i = 0; i < m.Rows(); i++ {
		buf = buf[:0]
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return matrixErrorf(opWriteDelimited, err)
			}
			if j > 0 {
				buf = append(buf, delim...)
			}
			buf = strconv.AppendFloat(buf, v, 'g', o.precision, 64)
		}
		buf = append(buf, '\n')
		if _, err = bw.Write(buf); err != nil {
			return matrixErrorf(opWriteDelimited, err)
		}
	}
	if err = bw.Flush(); err != nil {
		return matrixErrorf(opWriteDelimited, err)
	}

	return nil
}
