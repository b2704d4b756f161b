package match

import (
	"regexp"
	"strings"
)

var (
	reAllSpace   = regexp.MustCompile(`\s+`)
	reAmountJunk = regexp.MustCompile(`[R,\s]`)
	reNonDigit   = regexp.MustCompile(`[^\d]`)
)

// CleanSpace trims and collapses internal whitespace runs to single spaces.
func CleanSpace(s string) string {
	return strings.TrimSpace(reAllSpace.ReplaceAllString(s, " "))
}

// CleanDigits strips everything except digits. Used for numeric IDs that
// OCR tends to split with stray spaces (account numbers, ID numbers).
func CleanDigits(s string) string {
	return reNonDigit.ReplaceAllString(s, "")
}

// CleanAmount strips the currency symbol, thousands separators and
// whitespace from a monetary capture, leaving "12345.67".
func CleanAmount(s string) string {
	return reAmountJunk.ReplaceAllString(s, "")
}

// CleanUpper is CleanSpace plus uppercasing, for company names that appear
// in mixed case across documents.
func CleanUpper(s string) string {
	return strings.ToUpper(CleanSpace(s))
}
