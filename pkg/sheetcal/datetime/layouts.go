package datetime

import (
	"regexp"
	"time"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/normalize"
)

// weekdayToken stands in for a parenthesized weekday inside layouts.
// Go layouts only know English weekday names, so the weekday is replaced
// before matching and is not checked against the date.
const weekdayToken = "(W)"

// weekdayRE matches "(화)", "(화요일)", "(Tue)", "(Tuesday)" and the
// whitespace before them.
var weekdayRE = regexp.MustCompile(`\s*\(\s*(?:[월화수목금토일](?:요일)?|(?i:mon|tue|wed|thu|fri|sat|sun)[a-z]*\.?)\s*\)`)

type layout struct {
	value        string
	twoDigitYear bool
	weekday      bool
	hasTime      bool
}

// layouts is the exact-match cascade. Order matters: the first layout
// that consumes the whole value wins, and all layouts with a time come
// before the date-only ones. Slash dates are read month-first, then
// day-first.
var layouts = append(timeLayouts, dateLayouts...)

var timeLayouts = []layout{
	{value: "06-1-2(W) 15:04", twoDigitYear: true, weekday: true, hasTime: true},
	{value: "2006-1-2(W) 15:04", weekday: true, hasTime: true},
	{value: "06-1-2 15:04", twoDigitYear: true, hasTime: true},
	{value: "2006-1-2 15:04", hasTime: true},
	{value: "2006-1-2 15:04:05", hasTime: true},
	{value: "2006-01-02T15:04:05", hasTime: true},
	{value: "1/2/2006 15:04", hasTime: true},
	{value: "2/1/2006 15:04", hasTime: true},
	{value: "2006/1/2 15:04", hasTime: true},
	{value: "2006/1/2(W) 15:04", weekday: true, hasTime: true},
	{value: "2-1-2006 15:04", hasTime: true},
	{value: "2006.1.2 15:04", hasTime: true},
	{value: "2006.1.2(W) 15:04", weekday: true, hasTime: true},
	{value: "06.1.2 15:04", twoDigitYear: true, hasTime: true},
	{value: "06.1.2(W) 15:04", twoDigitYear: true, weekday: true, hasTime: true},
}

var dateLayouts = []layout{
	{value: "06-1-2(W)", twoDigitYear: true, weekday: true},
	{value: "2006-1-2(W)", weekday: true},
	{value: "06-1-2", twoDigitYear: true},
	{value: "2006-1-2"},
	{value: "1/2/2006"},
	{value: "2/1/2006"},
	{value: "2006/1/2"},
	{value: "2006/1/2(W)", weekday: true},
	{value: "2-1-2006"},
	{value: "2006.1.2"},
	{value: "2006.1.2(W)", weekday: true},
	{value: "06.1.2", twoDigitYear: true},
	{value: "06.1.2(W)", twoDigitYear: true, weekday: true},
}

func parseLayouts(s string) (Result, bool) {
	withToken := ""
	if locs := weekdayRE.FindAllStringIndex(s, -1); len(locs) == 1 {
		withToken = s[:locs[0][0]] + weekdayToken + s[locs[0][1]:]
	}

	for _, l := range layouts {
		value := s
		if l.weekday {
			if withToken == "" {
				continue
			}
			value = withToken
		}
		t, err := time.Parse(l.value, value)
		if err != nil {
			continue
		}
		d := models.DateOf(t)
		if l.twoDigitYear {
			d.Year = normalize.PivotYear(t.Year() % 100)
		}
		if !d.Valid() {
			continue
		}
		r := Result{Date: d, Time: DefaultTime, Method: MethodLayout}
		if l.hasTime {
			r.Time = models.Clock{Hour: t.Hour(), Minute: t.Minute()}
			r.HasTime = true
		}
		return r, true
	}
	return Result{}, false
}
