// Package parser reads spreadsheet sources into models.Table values.
package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
	"github.com/xuri/excelize/v2"
)

// ReadSheet reads every row of a sheet into a table keyed by column
// letter. Cells are read raw so date cells arrive as serial numbers.
// Empty rows are kept so row indices match sheet rows (0-based).
func ReadSheet(f *excelize.File, sheetName string) (models.Table, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Table{}, err
	}

	table := models.Table{Rows: make([]models.Row, 0, len(rows))}
	for _, row := range rows {
		cells := make(models.Row, 0, len(row))
		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			col, err := excelize.ColumnNumberToName(colIdx + 1)
			if err != nil {
				return models.Table{}, err
			}
			cells = append(cells, models.Cell{
				Key:   models.ColumnKey(col),
				Value: parseValue(cellValue),
			})
		}
		table.Rows = append(table.Rows, cells)
	}

	return table, nil
}

// parseValue renders a raw cell value as text. Numbers stored in
// exponent form ("1.0123456789E10") are expanded so digit runs survive.
func parseValue(s string) string {
	if !strings.ContainsAny(s, "eE") {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
