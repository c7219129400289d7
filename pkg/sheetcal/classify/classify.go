// Package classify infers which columns of a header-agnostic table hold
// the name, phone, date and procedure of a booking.
//
// Headers are found by keyword in the first rows of the table, then
// confirmed by the density of real values beneath them. Tables with no
// recognizable name or date header fall back to content heuristics.
package classify

import (
	"sort"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/datetime"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/dictionary"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/normalize"
)

// Params tunes the classifier.
type Params struct {
	// HeaderScanRows is how many leading rows are searched for headers.
	HeaderScanRows int
	// DensityWindow is how many rows below a header are inspected.
	DensityWindow int
	// DensityMin is the value count that makes a header strong.
	DensityMin int
	// NameFallbackRows bounds the search for a bare Hangul name.
	NameFallbackRows int
	// NameWindow is the number of rows checked from a fallback name cell.
	NameWindow int
	// NameMinHits is how many names the window must contain.
	NameMinHits int
	// DateFallbackRows bounds the date-content column search.
	DateFallbackRows int
}

// DefaultParams returns the tuned defaults.
func DefaultParams() Params {
	return Params{
		HeaderScanRows:   15,
		DensityWindow:    20,
		DensityMin:       3,
		NameFallbackRows: 20,
		NameWindow:       10,
		NameMinHits:      3,
		DateFallbackRows: 20,
	}
}

// Source records how a binding was made.
type Source string

const (
	SourceHeader       Source = "header"
	SourceNameFallback Source = "name_fallback"
	SourceDateFallback Source = "date_fallback"
)

// Decision explains one role binding.
type Decision struct {
	Role   models.ColumnRole
	Key    models.ColumnKey
	Row    int
	Header string
	Rank   Rank
	Hits   int
	Source Source
}

// Rank orders header candidates for a role. Higher wins. Keyword tier
// dominates: a priority header outranks any general one, and density only
// separates candidates of the same tier.
type Rank int

const (
	RankWeakGeneral Rank = iota
	RankStrongGeneral
	RankWeakPriority
	RankStrongPriority
)

func (r Rank) String() string {
	switch r {
	case RankWeakGeneral:
		return "weak"
	case RankWeakPriority:
		return "weak-priority"
	case RankStrongGeneral:
		return "strong"
	case RankStrongPriority:
		return "strong-priority"
	}
	return "unknown"
}

func rankOf(strong bool, tier dictionary.Tier) Rank {
	r := RankWeakGeneral
	if tier == dictionary.TierPriority {
		r = RankWeakPriority
	}
	if strong {
		r++
	}
	return r
}

// Classify returns the column mapping for table.
func Classify(table models.Table, dict *dictionary.Dictionary, p Params) models.ColumnMapping {
	m, _ := Explain(table, dict, p)
	return m
}

// Explain is Classify that also reports the decision behind each binding,
// ordered by role.
func Explain(table models.Table, dict *dictionary.Dictionary, p Params) (models.ColumnMapping, []Decision) {
	if dict == nil {
		dict = dictionary.Default()
	}
	best := make(map[models.ColumnRole]Decision)

	for i := 0; i < table.Len() && i < p.HeaderScanRows; i++ {
		for _, cell := range table.Row(i) {
			role, tier, ok := dict.MatchRole(normalize.Fold(cell.Value))
			if !ok {
				continue
			}
			hits := density(table, i, cell.Key, p.DensityWindow)
			if hits == 0 {
				continue
			}
			cand := Decision{
				Role:   role,
				Key:    cell.Key,
				Row:    i,
				Header: normalize.CellText(cell.Value),
				Rank:   rankOf(hits >= p.DensityMin, tier),
				Hits:   hits,
				Source: SourceHeader,
			}
			if cur, bound := best[role]; !bound || cand.Rank > cur.Rank {
				best[role] = cand
			}
		}
	}

	if _, ok := best[models.RoleName]; !ok {
		if d, ok := nameFallback(table, p, boundKeys(best)); ok {
			best[models.RoleName] = d
		}
	}
	if _, ok := best[models.RoleDate]; !ok {
		if d, ok := dateFallback(table, p, boundKeys(best)); ok {
			best[models.RoleDate] = d
		}
	}

	bindings := make(map[models.ColumnRole]models.ColumnKey, len(best))
	decisions := make([]Decision, 0, len(best))
	for role, d := range best {
		bindings[role] = d.Key
		decisions = append(decisions, d)
	}
	sort.Slice(decisions, func(i, j int) bool { return decisions[i].Role < decisions[j].Role })
	return models.NewColumnMapping(bindings), decisions
}

// density counts real values under key in the rows following row.
func density(table models.Table, row int, key models.ColumnKey, window int) int {
	hits := 0
	for i := row + 1; i <= row+window && i < table.Len(); i++ {
		if !normalize.IsPlaceholder(table.Value(i, key)) {
			hits++
		}
	}
	return hits
}

func boundKeys(best map[models.ColumnRole]Decision) map[models.ColumnKey]struct{} {
	keys := make(map[models.ColumnKey]struct{}, len(best))
	for _, d := range best {
		keys[d.Key] = struct{}{}
	}
	return keys
}

// nameFallback looks for a column of short Hangul names in a table whose
// name header could not be found.
func nameFallback(table models.Table, p Params, taken map[models.ColumnKey]struct{}) (Decision, bool) {
	for i := 0; i < table.Len() && i < p.NameFallbackRows; i++ {
		for _, cell := range table.Row(i) {
			if _, ok := taken[cell.Key]; ok {
				continue
			}
			if !normalize.IsHangulName(cell.Value) {
				continue
			}
			hits := 0
			for j := i; j < i+p.NameWindow && j < table.Len(); j++ {
				if normalize.IsHangulName(table.Value(j, cell.Key)) {
					hits++
				}
			}
			if hits >= p.NameMinHits {
				return Decision{
					Role:   models.RoleName,
					Key:    cell.Key,
					Row:    i,
					Hits:   hits,
					Source: SourceNameFallback,
				}, true
			}
		}
	}
	return Decision{}, false
}

// dateFallback picks the column whose leading cells most often parse as
// dates. Phone numbers are ignored so they are never mistaken for dates.
func dateFallback(table models.Table, p Params, taken map[models.ColumnKey]struct{}) (Decision, bool) {
	counts := make(map[models.ColumnKey]int)
	first := make(map[models.ColumnKey]int)
	var keys []models.ColumnKey
	for i := 0; i < table.Len() && i < p.DateFallbackRows; i++ {
		for _, cell := range table.Row(i) {
			if _, ok := taken[cell.Key]; ok {
				continue
			}
			if _, seen := counts[cell.Key]; !seen {
				keys = append(keys, cell.Key)
				counts[cell.Key] = 0
			}
			if normalize.LooksLikePhone(cell.Value) {
				continue
			}
			if _, ok := datetime.Parse(cell.Value); ok {
				if counts[cell.Key] == 0 {
					first[cell.Key] = i
				}
				counts[cell.Key]++
			}
		}
	}
	sort.SliceStable(keys, func(i, j int) bool { return models.ColumnLess(keys[i], keys[j]) })

	var pick models.ColumnKey
	top := 0
	for _, k := range keys {
		if counts[k] > top {
			pick, top = k, counts[k]
		}
	}
	if top == 0 {
		return Decision{}, false
	}
	return Decision{
		Role:   models.RoleDate,
		Key:    pick,
		Row:    first[pick],
		Hits:   top,
		Source: SourceDateFallback,
	}, true
}
