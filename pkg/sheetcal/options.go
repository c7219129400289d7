// Package sheetcal extracts appointment records from loosely structured,
// hand-maintained spreadsheets.
package sheetcal

import (
	"runtime"

	"github.com/rs/zerolog"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/classify"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/dictionary"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/facility"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/parser"
)

// Options configures extraction behavior.
type Options struct {
	// Dictionary is the keyword table. Nil uses the built-in table.
	Dictionary *dictionary.Dictionary
	// Classify tunes column role inference.
	Classify classify.Params
	// Facility tunes facility resolution windows.
	Facility facility.Params
	// Tables tunes the density check applied to whole sheets.
	Tables parser.TableDetectionParams
	// Workers bounds how many sheets are extracted at once.
	Workers int
	// Sheet restricts workbook extraction to one sheet when set.
	Sheet string
	// Label overrides the sheet name used as the facility fallback.
	Label string
	// SkipSparse specifies whether sheets below the table density are skipped.
	// If nil, defaults to true.
	SkipSparse *bool
	// Logger receives classification and per-sheet diagnostics.
	// If nil, nothing is logged.
	Logger *zerolog.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Dictionary: dictionary.Default(),
		Classify:   classify.DefaultParams(),
		Facility:   facility.DefaultParams(),
		Tables:     parser.DefaultTableParams(),
		Workers:    runtime.NumCPU(),
	}
}

// ShouldSkipSparse returns whether sparse sheets are skipped.
func (o Options) ShouldSkipSparse() bool {
	if o.SkipSparse != nil {
		return *o.SkipSparse
	}
	return true
}

func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}
