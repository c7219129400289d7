package models

// WorkbookData represents workbook-level container with per-sheet results.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets maps sheet name to SheetData.
	Sheets map[string]SheetData `json:"sheets"`
}

// RecordCount returns the number of records across all sheets.
func (w *WorkbookData) RecordCount() int {
	n := 0
	for _, s := range w.Sheets {
		n += len(s.Records)
	}
	return n
}
