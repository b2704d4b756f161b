// Package merge reconciles partial field sets from many documents, plus
// explicit operator input, into one canonical lease record. Precedence is
// tiered: explicit input beats the field's authoritative document kind,
// which beats any other document, which beats static defaults.
package merge

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/reflectall/leasegen/constants"
	"github.com/reflectall/leasegen/internal/docparse"
	"github.com/reflectall/leasegen/internal/lease"
)

// Precedence tiers, lower wins.
const (
	tierExplicit      = 1
	tierAuthoritative = 2
	tierOther         = 3
	tierDefault       = 4
)

// utilityDefault fills utility charge slots that no statement or invoice
// populated. It is deliberately not a number; the rendered schedule reads
// it verbatim.
const utilityDefault = "Metered or % of expense"

var defaultFields = map[string]string{
	"financial.utilities.electricity": utilityDefault,
	"financial.utilities.water":       utilityDefault,
	"financial.utilities.sewerage":    utilityDefault,
	"financial.utilities.municipal":   utilityDefault,
	"financial.utilities.refuse":      utilityDefault,
}

// authoritativeKind says which document kind owns a field key. A FICA pack
// is the authority on who the tenant and surety are; the municipal
// statement owns the utility schedule; invoices own the remaining money
// fields; a landlord invoice owns the landlord block.
func authoritativeKind(key string) constants.DocumentKind {
	switch {
	case strings.HasPrefix(key, "tenant."), strings.HasPrefix(key, "surety."):
		return constants.KindIdentityFICA
	case strings.HasPrefix(key, "financial.utilities."):
		return constants.KindUtilityStatement
	case strings.HasPrefix(key, "financial."):
		return constants.KindTenantInvoice
	case strings.HasPrefix(key, "landlord."):
		return constants.KindLandlordInvoice
	default:
		return constants.KindUnknown
	}
}

func tierFor(key string, kind constants.DocumentKind) int {
	if kind == authoritativeKind(key) {
		return tierAuthoritative
	}
	return tierOther
}

// Merger accumulates contributions and resolves them into a record.
type Merger struct {
	log *slog.Logger

	// winner per field key, kept so a later same-tier contribution can be
	// reported as a conflict instead of silently replaced.
	won map[string]contribution
}

type contribution struct {
	value  string
	source string
	tier   int
}

func New(log *slog.Logger) *Merger {
	if log == nil {
		log = slog.Default()
	}
	return &Merger{log: log, won: make(map[string]contribution)}
}

// AddExplicit records operator-entered values. They sit in the top tier
// and cannot be displaced by anything extracted.
func (m *Merger) AddExplicit(fields map[string]string, diags *lease.Diagnostics) {
	for key, value := range fields {
		if !lease.Known(key) {
			diags.Add(lease.DiagCoercion, key, "input", "unknown field")
			continue
		}
		m.offer(key, contribution{value: value, source: "input", tier: tierExplicit}, diags)
	}
}

// AddDocument records one extractor's partial field set. Extraction notes
// ride along as diagnostics so discarded implausible values stay visible.
func (m *Merger) AddDocument(fs docparse.PartialFieldSet, diags *lease.Diagnostics) {
	source := string(fs.Kind)
	if fs.SourceID != "" {
		source = fmt.Sprintf("%s(%s)", fs.Kind, fs.SourceID)
	}
	for _, note := range fs.Notes {
		diags.Add(lease.DiagExtraction, "", source, note)
	}
	for key, value := range fs.Fields {
		if !lease.Known(key) {
			continue
		}
		m.offer(key, contribution{value: value, source: source, tier: tierFor(key, fs.Kind)}, diags)
	}
}

// offer applies tiered precedence. A strictly lower tier displaces the
// holder; an equal tier with a different value is a conflict, and the
// later contribution wins so document order stays meaningful.
func (m *Merger) offer(key string, c contribution, diags *lease.Diagnostics) {
	held, ok := m.won[key]
	if !ok || c.tier < held.tier {
		m.won[key] = c
		return
	}
	if c.tier > held.tier {
		return
	}
	if c.value != held.value {
		diags.Add(lease.DiagConflict, key, c.source,
			fmt.Sprintf("%s from %s displaced %s from %s", c.value, c.source, held.value, held.source))
		m.log.Warn("merge.conflict", "field", key, "kept", c.source, "displaced", held.source)
	}
	m.won[key] = c
}

// Resolve validates every winning value into the record, fills the static
// defaults for slots still empty, and appends cross-field validation
// diagnostics. The returned record has every declared slot present.
func (m *Merger) Resolve(diags *lease.Diagnostics) *lease.Record {
	rec := lease.NewRecord()

	for _, key := range lease.Keys() {
		c, ok := m.won[key]
		if !ok {
			continue
		}
		if d := rec.Apply(key, c.value, c.source); d != nil {
			diags.Items = append(diags.Items, *d)
		}
	}

	// Defaults are placeholders, not data, so they skip type validation
	// and land in the slot directly.
	for key, value := range defaultFields {
		slot := rec.Slot(key)
		if slot != nil && !slot.Set {
			*slot = lease.Field{Value: value, Set: true, Source: "default"}
		}
	}

	diags.Items = append(diags.Items, rec.Validate()...)
	diags.Unset = rec.Unset()
	return rec
}
