package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
)

func TestToJSON(t *testing.T) {
	wb := &models.WorkbookData{
		BookName: "bookings.xlsx",
		Sheets: map[string]models.SheetData{
			"8월": {
				Label:    "8월",
				RowCount: 2,
				Mapping: models.NewColumnMapping(map[models.ColumnRole]models.ColumnKey{
					models.RoleName: "A",
					models.RoleDate: "C",
				}),
				Records: []models.ExtractedRecord{{
					Name:           "홍길동",
					Date:           models.Date{Year: 2025, Month: 8, Day: 5},
					Time:           models.Clock{Hour: 10},
					SourceRowIndex: 1,
					RawRow:         models.NewRow(map[string]string{"A": "홍길동"}),
				}},
			},
		},
	}

	data, err := ToJSON(wb, false)
	require.NoError(t, err)

	var got struct {
		BookName string `json:"book_name"`
		Sheets   map[string]struct {
			Mapping map[string]string `json:"mapping"`
			Records []map[string]any  `json:"records"`
		} `json:"sheets"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "bookings.xlsx", got.BookName)

	sheet := got.Sheets["8월"]
	assert.Equal(t, map[string]string{"name": "A", "date": "C"}, sheet.Mapping)
	require.Len(t, sheet.Records, 1)
	assert.Equal(t, "2025-08-05", sheet.Records[0]["date"])
	assert.Equal(t, "10:00", sheet.Records[0]["time"])
}

func TestSheetToJSONPretty(t *testing.T) {
	data, err := SheetToJSON(&models.SheetData{Label: "a", Records: []models.ExtractedRecord{}}, true)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"label\": \"a\"")
	assert.Contains(t, string(data), `"records": []`)
}

func TestRecordsToJSONNil(t *testing.T) {
	data, err := RecordsToJSON(nil, false)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
