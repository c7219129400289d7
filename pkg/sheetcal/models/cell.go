// Package models defines data structures for spreadsheet record extraction.
package models

import (
	"sort"
	"strings"
)

// ColumnKey identifies a column within a table, typically a spreadsheet
// column letter ("A", "B", ..., "AA") or a header string.
type ColumnKey string

// Cell is a single keyed cell value.
type Cell struct {
	// Key is the column the value belongs to.
	Key ColumnKey `json:"key"`
	// Value is the cell text as displayed or exported.
	Value string `json:"value"`
}

// Row is an ordered sequence of cells. Keys are unique within a row;
// absent keys read as empty.
type Row []Cell

// NewRow builds a row from a key/value map, ordering cells by
// spreadsheet column order.
func NewRow(values map[string]string) Row {
	row := make(Row, 0, len(values))
	for k, v := range values {
		row = append(row, Cell{Key: ColumnKey(k), Value: v})
	}
	sort.SliceStable(row, func(i, j int) bool {
		return ColumnLess(row[i].Key, row[j].Key)
	})
	return row
}

// Get returns the value stored under key, or "" when absent.
func (r Row) Get(key ColumnKey) string {
	for _, c := range r {
		if c.Key == key {
			return c.Value
		}
	}
	return ""
}

// Has reports whether the row carries a cell for key.
func (r Row) Has(key ColumnKey) bool {
	for _, c := range r {
		if c.Key == key {
			return true
		}
	}
	return false
}

// IsEmpty reports whether every cell of the row is blank.
func (r Row) IsEmpty() bool {
	for _, c := range r {
		if strings.TrimSpace(c.Value) != "" {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// ColumnLess orders column keys the way a spreadsheet lays them out:
// letter keys by length then alphabetically (A < Z < AA), letter keys
// before any other key, other keys lexically.
func ColumnLess(a, b ColumnKey) bool {
	la, lb := isLetterKey(a), isLetterKey(b)
	switch {
	case la && lb:
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	case la:
		return true
	case lb:
		return false
	}
	return a < b
}

func isLetterKey(k ColumnKey) bool {
	if k == "" {
		return false
	}
	for _, r := range k {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
