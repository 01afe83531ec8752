package grid

import (
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		address  string
		expected models.Coordinate
	}{
		{"A:1", models.Coordinate{Col: 0, Row: 0}},
		{"C:4", models.Coordinate{Col: 2, Row: 3}},
		{"Z:100", models.Coordinate{Col: 25, Row: 99}},
		{" K:22 ", models.Coordinate{Col: 10, Row: 21}},
	}

	for _, tt := range tests {
		result, err := ParseAddress(tt.address)
		if err != nil {
			t.Errorf("ParseAddress(%q) returned error: %v", tt.address, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("ParseAddress(%q) = %+v, expected %+v", tt.address, result, tt.expected)
		}
	}
}

func TestParseAddressMalformed(t *testing.T) {
	for _, address := range []string{"", "C4", "c:4", "AA:4", "C:0", "C:-1", "C:x", ":4", "4:C"} {
		_, err := ParseAddress(address)
		if !errors.Is(err, ErrMalformedAddress) {
			t.Errorf("ParseAddress(%q) error = %v, expected ErrMalformedAddress", address, err)
		}
	}
}

func TestAddressRoundTrip(t *testing.T) {
	for col := 'A'; col <= 'Z'; col++ {
		for _, row := range []int{1, 2, 9, 10, 42, 999} {
			address := string(col) + ":" + strconv.Itoa(row)
			c, err := ParseAddress(address)
			require.NoError(t, err)
			assert.Equal(t, address, Address(c))
		}
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		coord    models.Coordinate
		expected string
	}{
		{models.Coordinate{Col: 2, Row: 3}, "C4"},
		{models.Coordinate{Col: 0, Row: 0}, "A1"},
		{models.Coordinate{Col: 26, Row: 0}, "AA1"},
		{models.Coordinate{Col: -1, Row: 3}, ""},
		{models.Coordinate{Col: 0, Row: -1}, ""},
	}

	for _, tt := range tests {
		if result := Key(tt.coord); result != tt.expected {
			t.Errorf("Key(%+v) = %q, expected %q", tt.coord, result, tt.expected)
		}
	}

	key, err := AddressToKey("C:4")
	require.NoError(t, err)
	assert.Equal(t, "C4", key)
}

func TestSparseGridCell(t *testing.T) {
	g := SparseGrid{"C4": models.TextCell("BOYS -3 1/2 PHIL")}

	cell, ok := g.Cell(models.Coordinate{Col: 2, Row: 3})
	require.True(t, ok)
	assert.Equal(t, "BOYS -3 1/2 PHIL", cell.String())

	_, ok = g.Cell(models.Coordinate{Col: 3, Row: 3})
	assert.False(t, ok)

	_, ok = g.Cell(models.Coordinate{Col: -1, Row: 3})
	assert.False(t, ok)
}

func TestFromSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Ken")
	f.SetCellValue(sheetName, "A2", 24)
	f.SetCellValue(sheetName, "A3", "10 1/2")
	f.SetCellValue(sheetName, "B1", 17.5)

	tmpFile := filepath.Join(t.TempDir(), "grid.xlsx")
	require.NoError(t, f.SaveAs(tmpFile))

	f2, err := excelize.OpenFile(tmpFile)
	require.NoError(t, err)
	defer f2.Close()

	g, err := FromSheet(f2, sheetName)
	require.NoError(t, err)
	assert.Len(t, g, 4)

	assert.Equal(t, models.CellText, g["A1"].Kind)
	assert.Equal(t, "Ken", g["A1"].Text)

	assert.True(t, g["A2"].IsNumeric())
	assert.Equal(t, 24.0, g["A2"].Number)

	assert.Equal(t, models.CellText, g["A3"].Kind)

	assert.True(t, g["B1"].IsNumeric())
	assert.Equal(t, 17.5, g["B1"].Number)

	_, err = FromSheet(f2, "Missing")
	assert.Error(t, err)
}
