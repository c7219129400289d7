package facility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/dictionary"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
)

func newResolver(rows ...map[string]string) *Resolver {
	return NewResolver(models.NewTable(rows...), dictionary.Default(), DefaultParams())
}

// padded returns a table of n rows with the given rows placed by index.
func padded(n int, at map[int]map[string]string) []map[string]string {
	rows := make([]map[string]string, n)
	for i := range rows {
		rows[i] = at[i]
	}
	return rows
}

func TestResolveNearestAnchor(t *testing.T) {
	r := newResolver(padded(15, map[int]map[string]string{
		0:  {"A": "가나병원"},
		1:  {"A": "개인정보 수집 및 이용 동의"},
		9:  {"A": "다라의원"},
		10: {"A": "개인정보 수집 및 이용 동의"},
		13: {"A": "홍길동", "B": "2025-08-05"},
	})...)

	assert.Equal(t, []int{1, 10}, r.Anchors())
	assert.Equal(t, "다라의원", r.Resolve(13, "홍길동"))
	assert.Equal(t, "가나병원", r.Resolve(5, "김철수"))
	assert.Equal(t, "가나병원", r.TableFacility())
}

func TestResolvePrecedence(t *testing.T) {
	tests := []struct {
		name  string
		above map[string]string
		want  string
	}{
		{"synonym beats keyword", map[string]string{"A": "가나병원", "B": "라비앙 체험단"}, "라비앙성형외과"},
		{"keyword", map[string]string{"A": "3월 명단", "B": "미소치과"}, "미소치과"},
		{"hyphenated compound", map[string]string{"A": "강남-라인뷰티"}, "강남-라인뷰티"},
		{"spaced compound", map[string]string{"A": "압구정 리프팅 전문점"}, "압구정 리프팅 전문점"},
		{"short label", map[string]string{"A": "A-1"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResolver(tt.above, map[string]string{"A": "개인정보"}, map[string]string{"A": "홍길동"})
			assert.Equal(t, tt.want, r.Resolve(2, "홍길동"))
		})
	}
}

func TestResolveAnchorOutOfReach(t *testing.T) {
	r := newResolver(padded(60, map[int]map[string]string{
		0: {"A": "가나병원"},
		1: {"A": "개인정보"},
	})...)
	assert.Equal(t, "가나병원", r.Resolve(51, ""))
	assert.Equal(t, "", r.Resolve(52, ""))
}

func TestResolveBackupWindow(t *testing.T) {
	r := newResolver(padded(20, map[int]map[string]string{
		0:  {"B": "서울 피부과"},
		14: {"C": "황금 이벤트"},
	})...)

	assert.Equal(t, "서울 피부과", r.Resolve(0, ""))
	assert.Equal(t, "서울 피부과", r.Resolve(10, ""))
	// Row 11 scans rows 1 through 13 only.
	assert.Equal(t, "", r.Resolve(11, ""))
	assert.Equal(t, "황금피부과", r.Resolve(12, ""))
	assert.Equal(t, "황금피부과", r.Resolve(19, ""))
}

func TestResolveBackupLengthBounds(t *testing.T) {
	r := newResolver(map[string]string{"A": "내과"}, map[string]string{"A": "홍길동"})
	assert.Equal(t, "", r.Resolve(1, "홍길동"))
}

func TestResolveIgnoresOwnName(t *testing.T) {
	r := newResolver(
		map[string]string{"A": "미소치과"},
		map[string]string{"A": "개인정보"},
	)
	assert.Equal(t, "", r.Resolve(1, "미소치과"))
	assert.Equal(t, "미소치과", r.Resolve(1, "홍길동"))
}

func TestLabelFacility(t *testing.T) {
	d := dictionary.Default()
	assert.Equal(t, "셀나인청담", LabelFacility(d, "제네오엑스 8월"))
	assert.Equal(t, "미소치과", LabelFacility(d, "8월 미소치과 예약"))
	assert.Equal(t, "Sheet1", LabelFacility(d, " Sheet1 "))
	assert.Equal(t, "", LabelFacility(nil, ""))

	r := newResolver()
	assert.Equal(t, "트랜드성형외과", r.LabelFacility("트랜드"))
	assert.Equal(t, "", r.TableFacility())
	assert.Equal(t, "", r.Resolve(0, ""))
}
