// SPDX-License-Identifier: MIT

// Package significance turns a corrected p-value matrix into the list of
// significant node pairs and writes it as CSV.
package significance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/connstat/matrix"
)

var (
	// ErrInvalidAlpha is returned when alpha is not strictly inside (0, 1).
	ErrInvalidAlpha = errors.New("significance: alpha must be in (0, 1)")
)

// DefaultAlpha is the conventional significance threshold.
const DefaultAlpha = 0.05

// CSVHeader is the first line written by WriteCSV.
const CSVHeader = "Region 1,Region 2"

// Edge is a significant node pair with I < J.
type Edge struct {
	I int
	J int
}

// String renders the edge as "i,j".
func (e Edge) String() string {
	return strconv.Itoa(e.I) + "," + strconv.Itoa(e.J)
}

// Extract returns every (i,j), i<j, with corrected(i,j) < alpha, in ascending
// lexicographic order. The lower triangle is never read.
//
// Errors:
//   - ErrInvalidAlpha, matrix.ErrNilMatrix, matrix.ErrNonSquare.
//
// Complexity: O(p²).
func Extract(corrected matrix.Matrix, alpha float64) ([]Edge, error) {
	if !(alpha > 0 && alpha < 1) {
		return nil, fmt.Errorf("alpha=%v: %w", alpha, ErrInvalidAlpha)
	}
	if err := matrix.ValidateSquare(corrected); err != nil {
		return nil, fmt.Errorf("significance: %w", err)
	}

	edges := make([]Edge, 0)
	var v float64
	var err error
	for _, pr := range matrix.UpperPairs(corrected.Rows()) {
		if v, err = corrected.At(pr.I, pr.J); err != nil {
			return nil, fmt.Errorf("significance: %w", err)
		}
		if v < alpha {
			edges = append(edges, Edge{I: pr.I, J: pr.J})
		}
	}

	return edges, nil
}

// WriteCSV writes the header line followed by one "i,j" row per edge.
// An empty edge list still produces the header.
func WriteCSV(w io.Writer, edges []Edge) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(CSVHeader + "\n"); err != nil {
		return fmt.Errorf("significance: write header: %w", err)
	}
	for _, e := range edges {
		if _, err := bw.WriteString(e.String() + "\n"); err != nil {
			return fmt.Errorf("significance: write %s: %w", e, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("significance: flush: %w", err)
	}

	return nil
}
