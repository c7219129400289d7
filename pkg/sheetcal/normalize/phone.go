package normalize

import "regexp"

var (
	mobilePhoneRE  = regexp.MustCompile(`010-\d{4}-\d{4}`)
	genericPhoneRE = regexp.MustCompile(`\d{3}-\d{3,4}-\d{4}`)
	digitRunRE     = regexp.MustCompile(`\d+`)
)

// CanonicalPhone finds a phone number in free text and returns it in
// dashed form. Dashed numbers are returned as written; bare digit runs
// of 11 digits starting with 010 become DDD-DDDD-DDDD and 10-digit runs
// become DDD-DDD-DDDD. Returns "" when nothing phone-shaped is present.
func CanonicalPhone(text string) string {
	if text == "" {
		return ""
	}
	if m := mobilePhoneRE.FindString(text); m != "" {
		return m
	}
	if m := genericPhoneRE.FindString(text); m != "" {
		return m
	}
	for _, run := range digitRunRE.FindAllString(text, -1) {
		switch {
		case len(run) == 11 && run[:3] == "010":
			return run[:3] + "-" + run[3:7] + "-" + run[7:]
		case len(run) == 10:
			return run[:3] + "-" + run[3:6] + "-" + run[6:]
		}
	}
	return ""
}

// LooksLikePhone reports whether text carries a phone-shaped value.
func LooksLikePhone(text string) bool {
	return CanonicalPhone(text) != ""
}
