package models

import (
	"errors"
	"fmt"
)

// ErrMalformedTable indicates a table that cannot be processed at all.
var ErrMalformedTable = errors.New("malformed table")

// Table is an ordered sequence of rows. Row order is significant:
// rows above and below a record carry positional meaning.
type Table struct {
	Rows []Row `json:"rows"`
}

// NewTable builds a table from key/value maps, one per row.
func NewTable(rows ...map[string]string) Table {
	t := Table{Rows: make([]Row, 0, len(rows))}
	for _, r := range rows {
		t.Rows = append(t.Rows, NewRow(r))
	}
	return t
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Row returns the row at index i, or nil when out of range.
func (t Table) Row(i int) Row {
	if i < 0 || i >= len(t.Rows) {
		return nil
	}
	return t.Rows[i]
}

// Value returns the cell under key in row i, or "".
func (t Table) Value(i int, key ColumnKey) string {
	return t.Row(i).Get(key)
}

// TableError describes a structural defect found by Validate.
type TableError struct {
	Row    int
	Key    ColumnKey
	Reason string
}

func (e *TableError) Error() string {
	return fmt.Sprintf("malformed table at row %d (column %q): %s", e.Row, e.Key, e.Reason)
}

func (e *TableError) Unwrap() error {
	return ErrMalformedTable
}

// Validate checks that every cell has a column key and that no key
// repeats within a row. Ragged rows are legal.
func (t Table) Validate() error {
	for i, row := range t.Rows {
		seen := make(map[ColumnKey]struct{}, len(row))
		for _, c := range row {
			if c.Key == "" {
				return &TableError{Row: i, Reason: "empty column key"}
			}
			if _, dup := seen[c.Key]; dup {
				return &TableError{Row: i, Key: c.Key, Reason: "duplicate column key"}
			}
			seen[c.Key] = struct{}{}
		}
	}
	return nil
}
