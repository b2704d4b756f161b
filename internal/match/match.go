// Package match implements first-match-wins field extraction over ordered
// pattern lists. Pattern order is the precedence: put strict labeled
// patterns before loose fallbacks.
package match

import (
	"regexp"
)

// CleanFunc post-processes a raw capture into the value we keep.
type CleanFunc func(string) string

// Pattern pairs a compiled regexp with an optional field-specific cleaner.
// The first capture group is the candidate value; with no groups the whole
// match is used.
type Pattern struct {
	re    *regexp.Regexp
	clean CleanFunc
}

// P compiles expr into a Pattern. Panics on a bad expression, so pattern
// tables fail at init rather than mid-extraction.
func P(expr string, clean CleanFunc) Pattern {
	return Pattern{re: regexp.MustCompile(expr), clean: clean}
}

// Compiled wraps an already-compiled regexp, for patterns loaded from
// configuration where compile errors must be reported, not panicked.
func Compiled(re *regexp.Regexp, clean CleanFunc) Pattern {
	return Pattern{re: re, clean: clean}
}

// FieldCandidate is the output of matching one pattern against text.
type FieldCandidate struct {
	Field        string
	RawValue     string
	CleanedValue string
	PatternRank  int // index into the ordered pattern list; lower = higher confidence
}

func (p Pattern) capture(m []string) string {
	if len(m) > 1 {
		return m[1]
	}
	return m[0]
}

func (p Pattern) cleaned(raw string) string {
	if p.clean == nil {
		return raw
	}
	return p.clean(raw)
}

// Field evaluates patterns strictly in order against text and returns the
// first candidate whose cleaned value is non-empty. A capture that cleans
// to "" does not stop the scan; later patterns still get a chance.
func Field(text, field string, patterns []Pattern) (FieldCandidate, bool) {
	if text == "" {
		return FieldCandidate{}, false
	}
	for rank, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := p.capture(m)
		cleaned := p.cleaned(raw)
		if cleaned == "" {
			continue
		}
		return FieldCandidate{
			Field:        field,
			RawValue:     raw,
			CleanedValue: cleaned,
			PatternRank:  rank,
		}, true
	}
	return FieldCandidate{}, false
}

// All returns every non-empty cleaned capture for every pattern, in pattern
// order. Used for line-item fields that repeat in tabular statements and
// must be aggregated instead of first-match-wins.
func All(text, field string, patterns []Pattern) []FieldCandidate {
	if text == "" {
		return nil
	}
	var out []FieldCandidate
	for rank, p := range patterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			raw := p.capture(m)
			cleaned := p.cleaned(raw)
			if cleaned == "" {
				continue
			}
			out = append(out, FieldCandidate{
				Field:        field,
				RawValue:     raw,
				CleanedValue: cleaned,
				PatternRank:  rank,
			})
		}
	}
	return out
}
