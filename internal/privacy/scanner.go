package privacy

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+\d{1,2}\s?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
	// ssnPattern matches the 3-2-4 digit shape; validSSNGroups rejects the
	// reserved ranges the issuing rules exclude (RE2 has no lookahead, so the
	// exclusions are checked on the captured groups instead).
	ssnPattern = regexp.MustCompile(`\b(\d{3})[- ]?(\d{2})[- ]?(\d{4})\b`)
)

// sensitiveKeywords are matched case-insensitively as substrings, in order.
var sensitiveKeywords = []string{"password", "secret", "key", "token", "credit card"}

// Scan applies the fixed detector set to text and returns one human-readable
// warning per detector that fires, in detector declaration order. It is a
// pure function: no state, no I/O, deterministic output.
func Scan(text string) []string {
	var warnings []string

	if emailPattern.MatchString(text) {
		warnings = append(warnings, "Email Address detected")
	}
	if phonePattern.MatchString(text) {
		warnings = append(warnings, "Phone Number detected")
	}
	if containsSSN(text) {
		warnings = append(warnings, "Social Security Number format detected")
	}

	lower := strings.ToLower(text)
	for _, kw := range sensitiveKeywords {
		if strings.Contains(lower, kw) {
			warnings = append(warnings, fmt.Sprintf("Sensitive keyword: %q detected", kw))
		}
	}

	return warnings
}

func containsSSN(text string) bool {
	for _, m := range ssnPattern.FindAllStringSubmatch(text, -1) {
		if validSSNGroups(m[1], m[2], m[3]) {
			return true
		}
	}
	return false
}

// validSSNGroups applies the area/group/serial exclusions: area 000, 666 and
// 900-999 are never issued, group 00 and serial 0000 are invalid.
func validSSNGroups(area, group, serial string) bool {
	if area == "000" || area == "666" || area[0] == '9' {
		return false
	}
	if group == "00" {
		return false
	}
	if serial == "0000" {
		return false
	}
	return true
}
