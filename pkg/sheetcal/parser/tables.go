package parser

import (
	"fmt"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
	"github.com/xuri/excelize/v2"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 3,
	}
}

// TableRegion describes the populated area of a table.
type TableRegion struct {
	// Range is the bounding box in A1 notation (e.g., "A1:D10").
	Range string
	// NonEmpty is the number of populated cells inside the box.
	NonEmpty int
	// Density is NonEmpty divided by the box area.
	Density float64
}

// DetectTable measures the populated region of a table and reports
// whether it is dense enough to be worth extracting. Only column-letter
// keys take part in the measurement.
func DetectTable(table models.Table, params TableDetectionParams) (TableRegion, bool) {
	minRow, maxRow, minCol, maxCol := findDataBounds(table)
	if minRow < 0 {
		return TableRegion{}, false
	}

	totalCells := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	nonEmptyCells := countNonEmptyCells(table)

	startCell, _ := excelize.CoordinatesToCellName(minCol, minRow+1)
	endCell, _ := excelize.CoordinatesToCellName(maxCol, maxRow+1)
	region := TableRegion{
		Range:    fmt.Sprintf("%s:%s", startCell, endCell),
		NonEmpty: nonEmptyCells,
		Density:  float64(nonEmptyCells) / float64(totalCells),
	}

	if nonEmptyCells < params.MinNonemptyCells || region.Density < params.DensityMin {
		return region, false
	}
	return region, true
}

// findDataBounds finds the bounding box of non-empty cells. Rows are
// 0-based, columns 1-based.
func findDataBounds(table models.Table) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range table.Rows {
		for _, cell := range row {
			colIdx, ok := columnNumber(cell)
			if !ok {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// countNonEmptyCells counts non-empty letter-keyed cells.
func countNonEmptyCells(table models.Table) int {
	count := 0
	for _, row := range table.Rows {
		for _, cell := range row {
			if _, ok := columnNumber(cell); ok {
				count++
			}
		}
	}
	return count
}

func columnNumber(cell models.Cell) (int, bool) {
	if cell.Value == "" {
		return 0, false
	}
	n, err := excelize.ColumnNameToNumber(string(cell.Key))
	if err != nil {
		return 0, false
	}
	return n, true
}
