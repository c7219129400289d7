package datetime

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/normalize"
)

var (
	datePatternRE = regexp.MustCompile(`(?:^|\D)(\d{4}|\d{2})\s*[-/.년]?\s*(\d{1,2})\s*[-/.월]?\s*(\d{1,2})\s*일?`)
	timePatternRE = regexp.MustCompile(`(?i)(오전|오후|am|pm)?\s*(\d{1,2}):(\d{2})(?:\s*(am|pm))?`)
)

// parsePattern is the permissive fallback: the first year/month/day
// group in the value, optionally followed by a time.
func parsePattern(s string) (Result, bool) {
	if serialRE.MatchString(s) {
		return parseCompact(s)
	}
	cleaned := weekdayRE.ReplaceAllString(s, " ")
	m := datePatternRE.FindStringSubmatchIndex(cleaned)
	if m == nil {
		return Result{}, false
	}
	year, _ := strconv.Atoi(cleaned[m[2]:m[3]])
	month, _ := strconv.Atoi(cleaned[m[4]:m[5]])
	day, _ := strconv.Atoi(cleaned[m[6]:m[7]])
	if m[3]-m[2] == 2 {
		year = normalize.PivotYear(year)
	}

	d := models.Date{Year: year, Month: time.Month(month), Day: day}
	if month < 1 || month > 12 || !d.Valid() {
		return Result{}, false
	}

	r := Result{Date: d, Time: DefaultTime, Method: MethodPattern}
	if c, ok := parseClock(cleaned[m[1]:]); ok {
		r.Time = c
		r.HasTime = true
	}
	return r, true
}

func parseClock(s string) (models.Clock, bool) {
	m := timePatternRE.FindStringSubmatch(s)
	if m == nil {
		return models.Clock{}, false
	}
	hour, _ := strconv.Atoi(m[2])
	minute, _ := strconv.Atoi(m[3])

	marker := strings.ToLower(m[1] + m[4])
	switch {
	case strings.Contains(marker, "오후") || strings.Contains(marker, "pm"):
		if hour < 12 {
			hour += 12
		}
	case strings.Contains(marker, "오전") || strings.Contains(marker, "am"):
		if hour == 12 {
			hour = 0
		}
	}

	c := models.Clock{Hour: hour, Minute: minute}
	if !c.Valid() {
		return models.Clock{}, false
	}
	return c, true
}

// parseCompact reads bare yyyymmdd digits. Other bare numbers are not
// dates.
func parseCompact(s string) (Result, bool) {
	if len(s) != 8 {
		return Result{}, false
	}
	year, _ := strconv.Atoi(s[:4])
	month, _ := strconv.Atoi(s[4:6])
	day, _ := strconv.Atoi(s[6:])
	d := models.Date{Year: year, Month: time.Month(month), Day: day}
	if !d.Valid() {
		return Result{}, false
	}
	return Result{Date: d, Time: DefaultTime, Method: MethodPattern}, true
}
