// Package models defines data structures for spread pool extraction.
package models

import "strconv"

// Coordinate is a zero-based cell position in a worksheet.
type Coordinate struct {
	// Col is the column index (0 = "A").
	Col int `json:"c"`
	// Row is the row index (0 = row "1").
	Row int `json:"r"`
}

// Right returns the coordinate n columns to the right (negative n moves left).
func (c Coordinate) Right(n int) Coordinate {
	return Coordinate{Col: c.Col + n, Row: c.Row}
}

// Down returns the coordinate n rows below (negative n moves up).
func (c Coordinate) Down(n int) Coordinate {
	return Coordinate{Col: c.Col, Row: c.Row + n}
}

// CellKind tags the native type of a cell value.
type CellKind int

const (
	// CellText is any textual cell.
	CellText CellKind = iota
	// CellNumeric is a cell stored as a number in the workbook.
	CellNumeric
)

func (k CellKind) String() string {
	if k == CellNumeric {
		return "numeric"
	}
	return "text"
}

// Cell is a non-empty value in a sparse grid.
type Cell struct {
	// Kind is the native type of the cell.
	Kind CellKind `json:"kind"`
	// Text is the raw textual value. For numeric cells it holds the number as written.
	Text string `json:"text"`
	// Number is the numeric value, only meaningful when Kind is CellNumeric.
	Number float64 `json:"number,omitempty"`
}

// TextCell returns a textual cell.
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// NumberCell returns a numeric cell.
func NumberCell(f float64) Cell {
	return Cell{Kind: CellNumeric, Text: strconv.FormatFloat(f, 'f', -1, 64), Number: f}
}

// IsNumeric reports whether the cell is natively numeric.
func (c Cell) IsNumeric() bool {
	return c.Kind == CellNumeric
}

// String returns the cell value as text.
func (c Cell) String() string {
	return c.Text
}
