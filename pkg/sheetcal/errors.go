package sheetcal

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file could not be opened as a workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrUnsupportedFormat indicates an input file extension with no reader.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// ErrSheetNotFound indicates a requested sheet is absent from the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// Extraction components reported by ExtractionError.
const (
	ComponentRead    = "read"
	ComponentExtract = "extract"
)

// ExtractionError represents an error during extraction of one sheet.
type ExtractionError struct {
	SheetName string
	Component string // "read", "extract"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
