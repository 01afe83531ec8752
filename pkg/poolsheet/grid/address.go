// Package grid provides cell addressing and the sparse grid read by the block parsers.
package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
	"github.com/xuri/excelize/v2"
)

// ErrMalformedAddress indicates a region anchor that is not of the form "C:4".
var ErrMalformedAddress = errors.New("malformed address")

// ParseAddress converts a "C:4" address into a zero-based coordinate.
// The column must be a single uppercase letter and the row a positive integer.
func ParseAddress(address string) (models.Coordinate, error) {
	col, row, ok := strings.Cut(strings.TrimSpace(address), ":")
	if !ok {
		return models.Coordinate{}, fmt.Errorf("%w: %q", ErrMalformedAddress, address)
	}
	if len(col) != 1 || col[0] < 'A' || col[0] > 'Z' {
		return models.Coordinate{}, fmt.Errorf("%w: column %q in %q", ErrMalformedAddress, col, address)
	}
	n, err := strconv.Atoi(row)
	if err != nil || n < 1 {
		return models.Coordinate{}, fmt.Errorf("%w: row %q in %q", ErrMalformedAddress, row, address)
	}
	return models.Coordinate{Col: int(col[0] - 'A'), Row: n - 1}, nil
}

// Address converts a coordinate back to "C:4" form.
func Address(c models.Coordinate) string {
	name, err := excelize.ColumnNumberToName(c.Col + 1)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:%d", name, c.Row+1)
}

// Key returns the sparse grid key ("C4") for a coordinate.
// Coordinates outside the sheet return an empty key.
func Key(c models.Coordinate) string {
	name, err := excelize.CoordinatesToCellName(c.Col+1, c.Row+1)
	if err != nil {
		return ""
	}
	return name
}

// AddressToKey converts a "C:4" address directly to its grid key.
func AddressToKey(address string) (string, error) {
	c, err := ParseAddress(address)
	if err != nil {
		return "", err
	}
	return Key(c), nil
}
