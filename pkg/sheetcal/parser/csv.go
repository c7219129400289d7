package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV reads delimited text into a table keyed by column letter, the
// same shape ReadSheet produces. Records may have differing field counts.
func ReadCSV(r io.Reader, comma rune) (models.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.Table{}, err
	}
	cr := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var table models.Table
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.Table{}, err
		}
		cells := make(models.Row, 0, len(record))
		for colIdx, value := range record {
			if value == "" {
				continue
			}
			col, err := excelize.ColumnNumberToName(colIdx + 1)
			if err != nil {
				return models.Table{}, err
			}
			cells = append(cells, models.Cell{Key: models.ColumnKey(col), Value: value})
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}
