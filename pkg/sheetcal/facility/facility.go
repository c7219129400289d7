// Package facility recovers the facility (hospital or clinic) a booking
// belongs to from the rows around it.
//
// Sheets shared by facilities usually print the facility name on the row
// directly above a privacy-consent banner, and repeat that block once per
// facility. Rows are attributed to the nearest banner above them.
package facility

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/dictionary"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/normalize"
)

// Params tunes the resolver windows.
type Params struct {
	// AnchorLookback is how far above a row an anchor may sit.
	AnchorLookback int
	// BackupBefore is the number of rows above a row in the backup scan.
	BackupBefore int
	// BackupAfter is the exclusive row offset ending the backup scan.
	BackupAfter int
}

// DefaultParams returns the tuned defaults.
func DefaultParams() Params {
	return Params{AnchorLookback: 50, BackupBefore: 10, BackupAfter: 3}
}

const (
	compoundMinHyphenRunes = 6
	compoundMinRunes       = 10
	backupMinRunes         = 4
	backupMaxRunes         = 99
)

// Resolver answers facility lookups for one table. It holds no mutable
// state after construction.
type Resolver struct {
	table   models.Table
	dict    *dictionary.Dictionary
	params  Params
	anchors []int
}

// NewResolver indexes the anchor rows of table.
func NewResolver(table models.Table, dict *dictionary.Dictionary, p Params) *Resolver {
	if dict == nil {
		dict = dictionary.Default()
	}
	r := &Resolver{table: table, dict: dict, params: p}
	for i, row := range table.Rows {
		for _, c := range row {
			if dict.IsAnchor(c.Value) {
				r.anchors = append(r.anchors, i)
				break
			}
		}
	}
	return r
}

// Anchors returns the anchor row indices in ascending order.
func (r *Resolver) Anchors() []int {
	return append([]int(nil), r.anchors...)
}

// Resolve returns the facility for the row at rowIndex, or "". Cells
// equal to name are never taken as a facility.
func (r *Resolver) Resolve(rowIndex int, name string) string {
	name = normalize.CellText(name)
	if a, ok := r.nearestAnchor(rowIndex); ok {
		if label := r.labelAbove(a, name); label != "" {
			return label
		}
	}
	return r.backup(rowIndex, name)
}

// TableFacility returns the label of the first anchor, in table order,
// whose preceding row yields one.
func (r *Resolver) TableFacility() string {
	for _, a := range r.anchors {
		if label := r.labelAbove(a, ""); label != "" {
			return label
		}
	}
	return ""
}

// LabelFacility derives a facility from a sheet label.
func (r *Resolver) LabelFacility(label string) string {
	return LabelFacility(r.dict, label)
}

// LabelFacility derives a facility from free text such as a sheet label:
// the canonical name of a synonym it contains, else the word carrying a
// facility keyword, else the label itself.
func LabelFacility(dict *dictionary.Dictionary, label string) string {
	if dict == nil {
		dict = dictionary.Default()
	}
	label = normalize.CellText(label)
	if canonical, ok := dict.MatchSynonym(label); ok {
		return canonical
	}
	for _, word := range strings.Fields(label) {
		if _, ok := dict.FacilityKeyword(word); ok {
			return word
		}
	}
	return label
}

// nearestAnchor finds the closest anchor at or above rowIndex within
// the lookback window.
func (r *Resolver) nearestAnchor(rowIndex int) (int, bool) {
	i := sort.SearchInts(r.anchors, rowIndex+1) - 1
	if i < 0 {
		return 0, false
	}
	a := r.anchors[i]
	if a < rowIndex-r.params.AnchorLookback {
		return 0, false
	}
	return a, true
}

func (r *Resolver) labelAbove(anchor int, name string) string {
	row := r.table.Row(anchor - 1)
	if len(row) == 0 {
		return ""
	}
	cells := make([]string, 0, len(row))
	for _, c := range row {
		text := normalize.CellText(c.Value)
		if text == "" || (name != "" && text == name) {
			continue
		}
		cells = append(cells, text)
	}
	for _, text := range cells {
		if canonical, ok := r.dict.MatchSynonym(text); ok {
			return canonical
		}
	}
	for _, text := range cells {
		if _, ok := r.dict.FacilityKeyword(text); ok {
			return text
		}
	}
	for _, text := range cells {
		if isCompoundLabel(text) {
			return text
		}
	}
	return ""
}

// backup scans the rows around rowIndex for any facility-looking cell.
func (r *Resolver) backup(rowIndex int, name string) string {
	from := max(rowIndex-r.params.BackupBefore, 0)
	to := min(rowIndex+r.params.BackupAfter, r.table.Len())
	for i := from; i < to; i++ {
		for _, c := range r.table.Row(i) {
			text := normalize.CellText(c.Value)
			if text == "" || (name != "" && text == name) {
				continue
			}
			if canonical, ok := r.dict.MatchSynonym(text); ok {
				return canonical
			}
			if _, ok := r.dict.FacilityKeyword(text); ok {
				if n := utf8.RuneCountInString(text); n >= backupMinRunes && n <= backupMaxRunes {
					return text
				}
			}
		}
	}
	return ""
}

// isCompoundLabel matches labels like "강남-라인뷰티" or
// "압구정 리프팅 전문점" that name a facility without a keyword.
func isCompoundLabel(text string) bool {
	n := utf8.RuneCountInString(text)
	if strings.Contains(text, "-") && n >= compoundMinHyphenRunes {
		return true
	}
	return n >= compoundMinRunes && len(strings.Fields(text)) >= 2
}
