package models

import (
	"fmt"
	"time"
)

// Date is a calendar date without time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Valid reports whether d names an existing calendar day.
func (d Date) Valid() bool {
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return t.Day() == d.Day && t.Month() == d.Month
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText renders the date as 2006-01-02.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a 2006-01-02 date.
func (d *Date) UnmarshalText(b []byte) error {
	t, err := time.Parse("2006-01-02", string(b))
	if err != nil {
		return err
	}
	*d = DateOf(t)
	return nil
}

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// Valid reports whether c is within 00:00..23:59.
func (c Clock) Valid() bool {
	return c.Hour >= 0 && c.Hour < 24 && c.Minute >= 0 && c.Minute < 60
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MarshalText renders the clock as 15:04.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a 15:04 clock.
func (c *Clock) UnmarshalText(b []byte) error {
	t, err := time.Parse("15:04", string(b))
	if err != nil {
		return err
	}
	*c = Clock{Hour: t.Hour(), Minute: t.Minute()}
	return nil
}

// ExtractedRecord is one appointment-like record surfaced from a table row.
type ExtractedRecord struct {
	// Name is the person the record is about. Never empty.
	Name string `json:"name"`
	// Phone is the canonical phone number, possibly empty.
	Phone string `json:"phone"`
	// Date is the appointment date. Never zero.
	Date Date `json:"date"`
	// Time is the appointment time of day.
	Time Clock `json:"time"`
	// Procedure is the procedure text, possibly empty.
	Procedure string `json:"procedure"`
	// Facility is the resolved facility label, possibly empty.
	Facility string `json:"facility"`
	// SourceRowIndex is the 0-based index of the originating row.
	SourceRowIndex int `json:"source_row_index"`
	// RawRow is a copy of the originating row.
	RawRow Row `json:"raw_row"`
}

// Title returns the calendar title for the record.
func (r ExtractedRecord) Title() string {
	if r.Facility == "" {
		return r.Name
	}
	return r.Facility + "_" + r.Name
}

// StartsAt combines date and time in loc.
func (r ExtractedRecord) StartsAt(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(r.Date.Year, r.Date.Month, r.Date.Day, r.Time.Hour, r.Time.Minute, 0, 0, loc)
}
