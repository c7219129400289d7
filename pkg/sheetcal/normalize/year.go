// Package normalize holds the small pure text helpers shared by the
// classifier, the date parser and the facility resolver.
package normalize

// PivotYear expands a two-digit year: below 50 is 20yy, otherwise 19yy.
// Values outside 0..99 are returned unchanged.
func PivotYear(yy int) int {
	if yy < 0 || yy > 99 {
		return yy
	}
	if yy < 50 {
		return 2000 + yy
	}
	return 1900 + yy
}
