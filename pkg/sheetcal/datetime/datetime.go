// Package datetime parses the free-text appointment dates found in
// hand-maintained sheets.
//
// Parsing runs three stages and stops at the first that succeeds:
//  1. Spreadsheet date serials ("45123").
//  2. An ordered cascade of exact layouts; every layout carrying a time
//     is tried before any date-only layout.
//  3. A permissive year/month/day pattern with optional time.
//
// A value no stage accepts is reported as absent, never as an error.
package datetime

import (
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/normalize"
)

// DefaultTime is used when a value carries a date but no time.
var DefaultTime = models.Clock{Hour: 9, Minute: 0}

// Method records which stage produced a result.
type Method string

const (
	MethodSerial  Method = "serial"
	MethodLayout  Method = "layout"
	MethodPattern Method = "pattern"
)

// Result is a parsed date and time of day.
type Result struct {
	Date    models.Date
	Time    models.Clock
	HasTime bool
	Method  Method
}

// Spreadsheet serials count days from 1899-12-30. Values at or below
// serialMin are too small to be a plausible modern appointment date and
// values above serialMax are past 9999-12-31.
const (
	serialMin = 40000
	serialMax = 2958465
)

var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var serialRE = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)

// Parse converts text into a date and time of day. ok is false when the
// text holds no recognizable date.
func Parse(text string) (Result, bool) {
	s := normalize.CellText(text)
	if s == "" {
		return Result{}, false
	}
	if r, ok := parseSerial(s); ok {
		return r, true
	}
	if r, ok := parseLayouts(s); ok {
		return r, true
	}
	return parsePattern(s)
}

// ParseSerial converts a spreadsheet date serial.
func ParseSerial(text string) (Result, bool) {
	return parseSerial(normalize.CellText(text))
}

func parseSerial(s string) (Result, bool) {
	if !serialRE.MatchString(s) {
		return Result{}, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= serialMin || v > serialMax {
		return Result{}, false
	}
	d := serialEpoch.AddDate(0, 0, int(math.Floor(v)))
	return Result{Date: models.DateOf(d), Time: DefaultTime, Method: MethodSerial}, true
}
