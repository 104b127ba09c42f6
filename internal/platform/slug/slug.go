package slug

import (
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases input and collapses every non-alphanumeric run into a dash.
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Equal reports whether a and b reduce to the same non-empty slug, so
// "Plastic Bottle", "plastic-bottle" and "PLASTIC_BOTTLE" all match.
func Equal(a, b string) bool {
	sa := Make(a)
	return sa != "" && sa == Make(b)
}
