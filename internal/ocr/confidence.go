package ocr

import (
	"regexp"
	"strings"
)

var (
	reDate   = regexp.MustCompile(`\b\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}\b|\b20\d{2}-\d{2}-\d{2}\b`)
	reCurr   = regexp.MustCompile(`\br\s?\d|\bzar\b|\bvat\b`)
	reAmount = regexp.MustCompile(`\b\d{1,3}(,\d{3})*(\.\d{2})\b|\b\d+\.\d{2}\b`)
	reRegNo  = regexp.MustCompile(`\b\d{4}/\d{6,8}/\d{2}\b`)
)

func hasDatePattern(s string) bool     { return reDate.MatchString(s) }
func hasCurrencyPattern(s string) bool { return reCurr.MatchString(s) }
func hasAmountPattern(s string) bool   { return reAmount.MatchString(s) }
func hasRegNoPattern(s string) bool    { return reRegNo.MatchString(s) }

// naive heuristic confidence based on decoded text characteristics:
// lease paperwork reliably carries dates, rand amounts and registration
// numbers, so their presence is a cheap signal the OCR pass worked.
func heuristicConfidence(txt string) float32 {
	txtL := strings.ToLower(txt)
	score := float32(0.2) // base
	if hasDatePattern(txtL) {
		score += 0.2
	}
	if hasCurrencyPattern(txtL) {
		score += 0.15
	}
	if hasAmountPattern(txtL) {
		score += 0.15
	}
	if hasRegNoPattern(txtL) {
		score += 0.1
	}
	if len(txt) > 120 {
		score += 0.1
	} // enough content
	if score > 1.0 {
		score = 1.0
	}
	return score
}
