// Package docparse turns OCR text into partial field sets, one extractor
// per source-document kind. Each extractor declares its field→pattern
// table explicitly so reordering a pattern is a visible, reviewable change.
package docparse

import (
	"fmt"
	"strconv"

	"github.com/reflectall/leasegen/constants"
	"github.com/reflectall/leasegen/internal/lease"
	"github.com/reflectall/leasegen/internal/match"
)

// MaxPlausibleAmount rejects tabular false positives: a "charge" of a
// million rand or more is an account number or reference that leaked
// into an amount column.
const MaxPlausibleAmount = 1_000_000

// Plausible year window for document dates.
const (
	minPlausibleYear = 1990
	maxPlausibleYear = 2100
)

// FieldSpec binds one canonical field key to its ordered pattern list.
type FieldSpec struct {
	Key      string
	Patterns []match.Pattern
	Amount   bool // apply the magnitude sanity bound
	Date     bool // apply the plausible-year bound
	Sum      bool // aggregate repeated line items instead of first-match-wins
}

// PartialFieldSet is the output of one extractor invocation. Fields with
// no match are absent, never present with an empty value, so the merge
// stage can tell "absent" from "explicitly empty".
type PartialFieldSet struct {
	Kind     constants.DocumentKind
	SourceID string
	Fields   map[string]string
	Notes    []string
}

// Extractor owns the pattern table for one document kind.
type Extractor struct {
	Kind  constants.DocumentKind
	Specs []FieldSpec

	// prep normalizes text before matching (e.g. the utility statement
	// tables collapse to one line). Optional.
	prep func(string) string
	// post runs domain-specific extraction that doesn't fit a single
	// pattern, like multi-line addresses. Optional.
	post func(text string, fs *PartialFieldSet)
}

// Parse runs the pattern table over text. Deterministic: same text and
// table always produce the same set.
func (e *Extractor) Parse(text string) PartialFieldSet {
	fs := PartialFieldSet{Kind: e.Kind, Fields: make(map[string]string)}
	body := text
	if e.prep != nil {
		body = e.prep(body)
	}

	for _, spec := range e.Specs {
		if spec.Sum {
			e.parseSum(body, spec, &fs)
			continue
		}
		cand, ok := match.Field(body, spec.Key, spec.Patterns)
		if !ok {
			continue
		}
		value := cand.CleanedValue
		if spec.Amount && !plausibleAmount(value, spec.Key, &fs) {
			continue
		}
		if spec.Date && !plausibleDate(value, spec.Key, &fs) {
			continue
		}
		fs.Fields[spec.Key] = value
	}

	if e.post != nil {
		e.post(text, &fs)
	}
	return fs
}

// parseSum aggregates every matched line item for a charge category, the
// way multiple "Electricity" rows on a statement add up to one figure.
func (e *Extractor) parseSum(body string, spec FieldSpec, fs *PartialFieldSet) {
	var total float64
	var found bool
	for _, cand := range match.All(body, spec.Key, spec.Patterns) {
		v, err := strconv.ParseFloat(cand.CleanedValue, 64)
		if err != nil || v <= 0 {
			continue
		}
		if v >= MaxPlausibleAmount {
			fs.Notes = append(fs.Notes, fmt.Sprintf("%s: discarded implausible line item %s", spec.Key, cand.CleanedValue))
			continue
		}
		total += v
		found = true
	}
	if found {
		fs.Fields[spec.Key] = strconv.FormatFloat(total, 'f', 2, 64)
	}
}

func plausibleAmount(value, key string, fs *PartialFieldSet) bool {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || v <= 0 {
		return false
	}
	if v >= MaxPlausibleAmount {
		fs.Notes = append(fs.Notes, fmt.Sprintf("%s: discarded implausible amount %s", key, value))
		return false
	}
	return true
}

func plausibleDate(value, key string, fs *PartialFieldSet) bool {
	t, err := lease.ParseDate(value)
	if err != nil {
		return false
	}
	if t.Year() < minPlausibleYear || t.Year() > maxPlausibleYear {
		fs.Notes = append(fs.Notes, fmt.Sprintf("%s: discarded implausible date %s", key, value))
		return false
	}
	return true
}

// ForKind returns the extractor for a document kind, or nil when the kind
// is unknown and nothing sensible can be parsed.
func ForKind(kind constants.DocumentKind) *Extractor {
	switch kind {
	case constants.KindIdentityFICA:
		return identityExtractor
	case constants.KindTenantInvoice:
		return tenantInvoiceExtractor
	case constants.KindLandlordInvoice:
		return landlordInvoiceExtractor
	case constants.KindUtilityStatement:
		return utilityExtractor
	default:
		return nil
	}
}
