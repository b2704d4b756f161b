package lease

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reAmountShape = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	reAmountJunk  = regexp.MustCompile(`[R,\s]`)
	reInteger     = regexp.MustCompile(`^\d{1,3}$`)
)

// NormalizeAmount cleans a monetary string and normalizes it to two
// fractional digits. Rejects negatives, more than two decimals and
// anything that does not parse.
func NormalizeAmount(s string) (string, error) {
	cleaned := reAmountJunk.ReplaceAllString(strings.TrimSpace(s), "")
	if !reAmountShape.MatchString(cleaned) {
		return "", fmt.Errorf("not a non-negative decimal with at most 2 fractional digits: %q", s)
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return "", fmt.Errorf("parse amount %q: %w", s, err)
	}
	return strconv.FormatFloat(v, 'f', 2, 64), nil
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02 January 2006",
	"2 January 2006",
}

// ParseDate accepts the date shapes the source documents actually use:
// ISO, slashed day-first, and "01 MARCH 2026" style long form.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	candidates := []string{s, titleCaseMonth(s)}
	for _, c := range candidates {
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, c, time.UTC); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", s)
}

// titleCaseMonth fixes "01 MARCH 2026" / "01 march 2026" for time.Parse,
// which only accepts "January" form month names.
func titleCaseMonth(s string) string {
	parts := strings.Fields(s)
	for i, p := range parts {
		if len(p) > 2 && reAlpha.MatchString(p) {
			parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
		}
	}
	return strings.Join(parts, " ")
}

var reAlpha = regexp.MustCompile(`^[A-Za-z]+$`)

// Apply validates value for the slot's declared type and sets it.
// Invalid values coerce the slot to unset and return a coercion
// diagnostic instead of propagating the raw string.
func (r *Record) Apply(key, value, source string) *Diagnostic {
	slot := r.Slot(key)
	if slot == nil {
		return &Diagnostic{Kind: DiagCoercion, Field: key, Source: source, Message: "unknown field"}
	}
	switch TypeOf(key) {
	case TypeAmount:
		normalized, err := NormalizeAmount(value)
		if err != nil {
			*slot = Field{}
			return &Diagnostic{Kind: DiagCoercion, Field: key, Source: source, Message: err.Error()}
		}
		*slot = Field{Value: normalized, Set: true, Source: source}
	case TypeDate:
		t, err := ParseDate(value)
		if err != nil {
			*slot = Field{}
			return &Diagnostic{Kind: DiagCoercion, Field: key, Source: source, Message: err.Error()}
		}
		*slot = Field{Value: t.Format("2006-01-02"), Set: true, Source: source}
	case TypeInteger:
		cleaned := strings.TrimSpace(value)
		if !reInteger.MatchString(cleaned) {
			*slot = Field{}
			return &Diagnostic{Kind: DiagCoercion, Field: key, Source: source, Message: fmt.Sprintf("not a small integer: %q", value)}
		}
		*slot = Field{Value: cleaned, Set: true, Source: source}
	default:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			*slot = Field{}
			return &Diagnostic{Kind: DiagCoercion, Field: key, Source: source, Message: "empty value"}
		}
		*slot = Field{Value: trimmed, Set: true, Source: source}
	}
	return nil
}

// Validate runs cross-field checks. Violations come back as diagnostics;
// a partial draft record is legitimate, so nothing here is a hard failure.
func (r *Record) Validate() []Diagnostic {
	var diags []Diagnostic
	if r.Lease.StartDate.Set && r.Lease.EndDate.Set {
		start, err1 := ParseDate(r.Lease.StartDate.Value)
		end, err2 := ParseDate(r.Lease.EndDate.Value)
		if err1 == nil && err2 == nil && end.Before(start) {
			diags = append(diags, Diagnostic{
				Kind:    DiagValidation,
				Field:   "lease.end_date",
				Message: fmt.Sprintf("end date %s precedes start date %s", r.Lease.EndDate.Value, r.Lease.StartDate.Value),
			})
		}
	}
	return diags
}
