package sheetcal

import (
	"github.com/rs/zerolog"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/classify"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/datetime"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/dictionary"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/facility"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/normalize"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/parser"
)

// Extractor turns tables into records. It is safe for concurrent use.
type Extractor struct {
	opts Options
	log  zerolog.Logger
}

// New returns an Extractor. Zero-valued parameter groups in opts take
// their defaults.
func New(opts Options) *Extractor {
	if opts.Dictionary == nil {
		opts.Dictionary = dictionary.Default()
	}
	if opts.Classify == (classify.Params{}) {
		opts.Classify = classify.DefaultParams()
	}
	if opts.Facility == (facility.Params{}) {
		opts.Facility = facility.DefaultParams()
	}
	if opts.Tables == (parser.TableDetectionParams{}) {
		opts.Tables = parser.DefaultTableParams()
	}
	return &Extractor{opts: opts, log: opts.logger()}
}

// Extract returns the records found in table. label names the table and
// serves as the last-resort facility. A table without a name or date
// column yields no records and no error; only a structurally broken
// table is an error.
func (e *Extractor) Extract(table models.Table, label string) ([]models.ExtractedRecord, error) {
	sheet, err := e.ExtractTable(table, label)
	if err != nil {
		return nil, err
	}
	return sheet.Records, nil
}

// ExtractTable is Extract returning the full per-table result.
func (e *Extractor) ExtractTable(table models.Table, label string) (models.SheetData, error) {
	if err := table.Validate(); err != nil {
		return models.SheetData{}, err
	}

	sheet := models.SheetData{
		Label:    label,
		RowCount: table.Len(),
		Records:  []models.ExtractedRecord{},
	}
	if region, _ := parser.DetectTable(table, e.opts.Tables); region.Range != "" {
		sheet.UsedRange = region.Range
	}

	mapping, decisions := classify.Explain(table, e.opts.Dictionary, e.opts.Classify)
	sheet.Mapping = mapping
	for _, d := range decisions {
		e.log.Debug().
			Str("sheet", label).
			Stringer("role", d.Role).
			Str("column", string(d.Key)).
			Int("row", d.Row).
			Str("header", d.Header).
			Stringer("rank", d.Rank).
			Int("hits", d.Hits).
			Str("source", string(d.Source)).
			Msg("column bound")
	}

	nameKey, hasName := mapping.Get(models.RoleName)
	dateKey, hasDate := mapping.Get(models.RoleDate)
	if !hasName || !hasDate {
		e.log.Debug().
			Str("sheet", label).
			Bool("name", hasName).
			Bool("date", hasDate).
			Msg("required columns missing, no records")
		return sheet, nil
	}
	phoneKey, hasPhone := mapping.Get(models.RolePhone)
	procKey, hasProc := mapping.Get(models.RoleProcedure)

	resolver := facility.NewResolver(table, e.opts.Dictionary, e.opts.Facility)
	sheet.Facility = resolver.TableFacility()
	labelFacility := resolver.LabelFacility(label)

	for i, row := range table.Rows {
		name := cellValue(row, nameKey)
		if name == "" {
			continue
		}
		parsed, ok := datetime.Parse(row.Get(dateKey))
		if !ok {
			continue
		}

		rec := models.ExtractedRecord{
			Name:           name,
			Date:           parsed.Date,
			Time:           parsed.Time,
			SourceRowIndex: i,
			RawRow:         row.Clone(),
		}
		if hasPhone {
			rec.Phone = phoneValue(row.Get(phoneKey))
		}
		if rec.Phone == "" {
			rec.Phone = scanPhone(row)
		}
		if hasProc {
			rec.Procedure = cellValue(row, procKey)
		}

		rec.Facility = sheet.Facility
		if rec.Facility == "" {
			rec.Facility = resolver.Resolve(i, name)
		}
		if rec.Facility == "" {
			rec.Facility = labelFacility
		}

		sheet.Records = append(sheet.Records, rec)
	}

	e.log.Debug().
		Str("sheet", label).
		Int("rows", sheet.RowCount).
		Int("records", len(sheet.Records)).
		Str("facility", sheet.Facility).
		Msg("sheet extracted")
	return sheet, nil
}

// cellValue returns the cleaned cell text, or "" for a placeholder.
func cellValue(row models.Row, key models.ColumnKey) string {
	v := normalize.CellText(row.Get(key))
	if normalize.IsPlaceholder(v) {
		return ""
	}
	return v
}

// phoneValue canonicalizes a phone cell, keeping text that does not
// canonicalize as written.
func phoneValue(raw string) string {
	v := normalize.CellText(raw)
	if normalize.IsPlaceholder(v) {
		return ""
	}
	if p := normalize.CanonicalPhone(v); p != "" {
		return p
	}
	return v
}

// scanPhone returns the first phone-shaped value anywhere in the row.
func scanPhone(row models.Row) string {
	for _, c := range row {
		if p := normalize.CanonicalPhone(normalize.CellText(c.Value)); p != "" {
			return p
		}
	}
	return ""
}
