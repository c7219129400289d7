// Package output serializes extraction results.
package output

import (
	"encoding/json"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
)

// ToJSON serializes a workbook result.
func ToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return marshal(wb, pretty)
}

// SheetToJSON serializes one sheet result.
func SheetToJSON(sheet *models.SheetData, pretty bool) ([]byte, error) {
	return marshal(sheet, pretty)
}

// RecordsToJSON serializes a record list. A nil list renders as [].
func RecordsToJSON(records []models.ExtractedRecord, pretty bool) ([]byte, error) {
	if records == nil {
		records = []models.ExtractedRecord{}
	}
	return marshal(records, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
