package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
)

func date(y int, m time.Month, d int) models.Date {
	return models.Date{Year: y, Month: m, Day: d}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		date    models.Date
		clock   string
		hasTime bool
		method  Method
	}{
		{"25-08-05(화) 10:00", date(2025, 8, 5), "10:00", true, MethodLayout},
		{"2025-08-05(화) 10:00", date(2025, 8, 5), "10:00", true, MethodLayout},
		{"2025-08-05 (화요일) 10:00", date(2025, 8, 5), "10:00", true, MethodLayout},
		{"2025-08-05(Tue) 10:00", date(2025, 8, 5), "10:00", true, MethodLayout},
		{"25-08-05 10:00", date(2025, 8, 5), "10:00", true, MethodLayout},
		{"2025-08-05 9:30", date(2025, 8, 5), "09:30", true, MethodLayout},
		{"2025-08-05 10:00:00", date(2025, 8, 5), "10:00", true, MethodLayout},
		{"08/05/2025 10:00", date(2025, 8, 5), "10:00", true, MethodLayout},
		{"25/08/2025 10:00", date(2025, 8, 25), "10:00", true, MethodLayout},
		{"2025/08/05 14:30", date(2025, 8, 5), "14:30", true, MethodLayout},
		{"05-08-2025 10:00", date(2025, 8, 5), "10:00", true, MethodLayout},
		{"2025.08.05 10:00", date(2025, 8, 5), "10:00", true, MethodLayout},
		{"25.08.05 10:00", date(2025, 8, 5), "10:00", true, MethodLayout},
		{"25-08-05(화)", date(2025, 8, 5), "09:00", false, MethodLayout},
		{"2025-08-05", date(2025, 8, 5), "09:00", false, MethodLayout},
		{"25.8.5", date(2025, 8, 5), "09:00", false, MethodLayout},
		{"2025. 8. 5", date(2025, 8, 5), "09:00", false, MethodPattern},
		{"2025년 8월 5일 오후 3:30", date(2025, 8, 5), "15:30", true, MethodPattern},
		{"25-08-05(화)10:00", date(2025, 8, 5), "10:00", true, MethodPattern},
		{"20250805", date(2025, 8, 5), "09:00", false, MethodPattern},
		{"45123", date(2023, 7, 16), "09:00", false, MethodSerial},
		{"45123.75", date(2023, 7, 16), "09:00", false, MethodSerial},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.date, got.Date)
			assert.Equal(t, tt.clock, got.Time.String())
			assert.Equal(t, tt.hasTime, got.HasTime)
			assert.Equal(t, tt.method, got.Method)
		})
	}
}

func TestParse_TwoDigitYearPivot(t *testing.T) {
	got, ok := Parse("49-01-02")
	require.True(t, ok)
	assert.Equal(t, 2049, got.Date.Year)

	got, ok = Parse("50-01-02")
	require.True(t, ok)
	assert.Equal(t, 1950, got.Date.Year)

	got, ok = Parse("50년 1월 2일")
	require.True(t, ok)
	assert.Equal(t, 1950, got.Date.Year)
}

func TestParse_Absent(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"TBD",
		"미정",
		"2025-02-30",
		"2025-13-01",
		"39999",
		"010-1234-5678",
		"1012345678",
	} {
		_, ok := Parse(in)
		assert.False(t, ok, "Parse(%q) should fail", in)
	}
}

func TestParse_TimePreferredOverDateOnly(t *testing.T) {
	got, ok := Parse("2025-08-05 18:45")
	require.True(t, ok)
	assert.True(t, got.HasTime)
	assert.Equal(t, models.Clock{Hour: 18, Minute: 45}, got.Time)
}

func TestParse_InvalidTimeFallsBackToDefault(t *testing.T) {
	got, ok := Parse("2025년 8월 5일 27:99")
	require.True(t, ok)
	assert.False(t, got.HasTime)
	assert.Equal(t, DefaultTime, got.Time)
}

func TestParseSerial(t *testing.T) {
	got, ok := ParseSerial("45000")
	require.True(t, ok)
	assert.Equal(t, date(2023, 3, 15), got.Date)

	_, ok = ParseSerial("40000")
	assert.False(t, ok)
	_, ok = ParseSerial("2958466")
	assert.False(t, ok)
}
