package grid

import (
	"strconv"

	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
	"github.com/xuri/excelize/v2"
)

// Grid is read-only, per-address access to a worksheet.
type Grid interface {
	// Cell returns the cell at c, or false when it is empty or off the sheet.
	Cell(c models.Coordinate) (models.Cell, bool)
}

// SparseGrid maps grid keys ("C4") to non-empty cells.
type SparseGrid map[string]models.Cell

// Cell implements Grid.
func (g SparseGrid) Cell(c models.Coordinate) (models.Cell, bool) {
	key := Key(c)
	if key == "" {
		return models.Cell{}, false
	}
	cell, ok := g[key]
	return cell, ok
}

// FromSheet loads the non-empty cells of a worksheet into a SparseGrid.
func FromSheet(f *excelize.File, sheetName string) (SparseGrid, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	g := make(SparseGrid)
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			if value == "" {
				continue
			}
			name, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				continue
			}
			typ, err := f.GetCellType(sheetName, name)
			if err != nil {
				typ = excelize.CellTypeUnset
			}
			g[name] = cellValue(typ, value)
		}
	}
	return g, nil
}

// cellValue tags a raw value with its native type. Cells without an explicit
// type attribute are numeric when their raw value parses as a number.
func cellValue(typ excelize.CellType, raw string) models.Cell {
	switch typ {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return models.Cell{Kind: models.CellNumeric, Text: raw, Number: f}
		}
	}
	return models.TextCell(raw)
}
