package models

// SheetData represents extraction results for a single sheet.
type SheetData struct {
	// Label is the human-readable sheet name used as facility fallback.
	Label string `json:"label"`
	// UsedRange is the bounding range of non-empty cells (e.g., "A1:O40").
	UsedRange string `json:"used_range,omitempty"`
	// RowCount is the number of rows read from the sheet.
	RowCount int `json:"row_count"`
	// Mapping is the inferred role to column binding.
	Mapping ColumnMapping `json:"mapping"`
	// Facility is the table-wide facility label, if one was found.
	Facility string `json:"facility,omitempty"`
	// Records contains the extracted records in row order.
	Records []ExtractedRecord `json:"records"`
}
