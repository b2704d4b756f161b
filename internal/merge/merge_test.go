package merge

import (
	"testing"

	"github.com/reflectall/leasegen/constants"
	"github.com/reflectall/leasegen/internal/docparse"
	"github.com/reflectall/leasegen/internal/lease"
)

func fieldSet(kind constants.DocumentKind, id string, fields map[string]string) docparse.PartialFieldSet {
	return docparse.PartialFieldSet{Kind: kind, SourceID: id, Fields: fields}
}

func TestExplicitInputBeatsExtracted(t *testing.T) {
	diags := lease.NewDiagnostics("s1")
	m := New(nil)

	m.AddDocument(fieldSet(constants.KindIdentityFICA, "d1", map[string]string{
		"tenant.name": "Other Co (Pty) Ltd",
	}), diags)
	m.AddExplicit(map[string]string{"tenant.name": "Acme Trading (Pty) Ltd"}, diags)

	rec := m.Resolve(diags)
	if got := rec.Tenant.Name; got.Value != "Acme Trading (Pty) Ltd" || got.Source != "input" {
		t.Errorf("tenant.name = %+v", got)
	}
}

func TestExplicitSurvivesLaterDocument(t *testing.T) {
	diags := lease.NewDiagnostics("s1")
	m := New(nil)

	m.AddExplicit(map[string]string{"financial.rent": "30000"}, diags)
	m.AddDocument(fieldSet(constants.KindTenantInvoice, "d1", map[string]string{
		"financial.rent": "22730.00",
	}), diags)

	rec := m.Resolve(diags)
	if got := rec.Financial.Rent; got.Value != "30000.00" || got.Source != "input" {
		t.Errorf("financial.rent = %+v", got)
	}
}

func TestAuthoritativeKindBeatsOtherKind(t *testing.T) {
	diags := lease.NewDiagnostics("s1")
	m := New(nil)

	// invoice offers a tenant name first, FICA pack arrives second
	m.AddDocument(fieldSet(constants.KindTenantInvoice, "inv", map[string]string{
		"tenant.name": "Acme Trdng Pty Ltd",
	}), diags)
	m.AddDocument(fieldSet(constants.KindIdentityFICA, "fica", map[string]string{
		"tenant.name": "Acme Trading (Pty) Ltd",
	}), diags)

	rec := m.Resolve(diags)
	if got := rec.Tenant.Name.Value; got != "Acme Trading (Pty) Ltd" {
		t.Errorf("tenant.name = %q", got)
	}
	for _, d := range diags.Items {
		if d.Kind == lease.DiagConflict {
			t.Errorf("cross-tier displacement must not report a conflict: %+v", d)
		}
	}
}

func TestNonAuthoritativeFallbackFillsGap(t *testing.T) {
	diags := lease.NewDiagnostics("s1")
	m := New(nil)

	// no FICA document in the batch: the invoice's bank details stand
	m.AddDocument(fieldSet(constants.KindTenantInvoice, "inv", map[string]string{
		"tenant.bank_name":  "Nedbank",
		"tenant.account_no": "1234567890",
	}), diags)

	rec := m.Resolve(diags)
	if rec.Tenant.BankName.Value != "Nedbank" || rec.Tenant.AccountNo.Value != "1234567890" {
		t.Errorf("bank fields = %+v / %+v", rec.Tenant.BankName, rec.Tenant.AccountNo)
	}
}

func TestSameTierConflictDiagnosedLastWriteWins(t *testing.T) {
	diags := lease.NewDiagnostics("s1")
	m := New(nil)

	m.AddDocument(fieldSet(constants.KindUtilityStatement, "u1", map[string]string{
		"financial.utilities.water": "320.10",
	}), diags)
	m.AddDocument(fieldSet(constants.KindUtilityStatement, "u2", map[string]string{
		"financial.utilities.water": "450.00",
	}), diags)

	rec := m.Resolve(diags)
	if got := rec.Financial.Utilities.Water.Value; got != "450.00" {
		t.Errorf("water = %q, want later document's value", got)
	}
	var conflicts int
	for _, d := range diags.Items {
		if d.Kind == lease.DiagConflict && d.Field == "financial.utilities.water" {
			conflicts++
		}
	}
	if conflicts != 1 {
		t.Errorf("conflicts = %d, want 1", conflicts)
	}
}

func TestSameTierSameValueIsNotAConflict(t *testing.T) {
	diags := lease.NewDiagnostics("s1")
	m := New(nil)

	m.AddDocument(fieldSet(constants.KindUtilityStatement, "u1", map[string]string{
		"financial.utilities.water": "320.10",
	}), diags)
	m.AddDocument(fieldSet(constants.KindUtilityStatement, "u2", map[string]string{
		"financial.utilities.water": "320.10",
	}), diags)

	m.Resolve(diags)
	for _, d := range diags.Items {
		if d.Kind == lease.DiagConflict {
			t.Errorf("agreeing sources reported as conflict: %+v", d)
		}
	}
}

func TestUtilityDefaultsFillUnmatchedCharges(t *testing.T) {
	diags := lease.NewDiagnostics("s1")
	m := New(nil)

	m.AddDocument(fieldSet(constants.KindUtilityStatement, "u1", map[string]string{
		"financial.utilities.electricity": "4475.37",
	}), diags)

	rec := m.Resolve(diags)
	if got := rec.Financial.Utilities.Electricity; got.Value != "4475.37" {
		t.Errorf("electricity = %+v", got)
	}
	if got := rec.Financial.Utilities.Water; got.Value != "Metered or % of expense" || got.Source != "default" {
		t.Errorf("water default = %+v", got)
	}
	// total_due has no default
	if rec.Financial.Utilities.TotalDue.Set {
		t.Errorf("total_due should stay unset, got %+v", rec.Financial.Utilities.TotalDue)
	}
}

func TestInvalidWinnerCoercedToUnsetWithDiagnostic(t *testing.T) {
	diags := lease.NewDiagnostics("s1")
	m := New(nil)

	m.AddDocument(fieldSet(constants.KindTenantInvoice, "inv", map[string]string{
		"financial.deposit": "forty five thousand",
	}), diags)

	rec := m.Resolve(diags)
	if rec.Financial.Deposit.Set {
		t.Error("deposit must be unset after coercion")
	}
	var coercions int
	for _, d := range diags.Items {
		if d.Kind == lease.DiagCoercion && d.Field == "financial.deposit" {
			coercions++
		}
	}
	if coercions != 1 {
		t.Errorf("coercions = %d, want 1", coercions)
	}
}

func TestExtractionNotesBecomeDiagnostics(t *testing.T) {
	diags := lease.NewDiagnostics("s1")
	m := New(nil)

	fs := fieldSet(constants.KindUtilityStatement, "u1", nil)
	fs.Fields = map[string]string{}
	fs.Notes = []string{"financial.utilities.water: discarded implausible amount 2000000.00"}
	m.AddDocument(fs, diags)

	found := false
	for _, d := range diags.Items {
		if d.Kind == lease.DiagExtraction {
			found = true
		}
	}
	if !found {
		t.Error("extractor note did not surface as diagnostic")
	}
}

func TestUnsetReportedAfterResolve(t *testing.T) {
	diags := lease.NewDiagnostics("s1")
	rec := New(nil).Resolve(diags)
	if len(diags.Unset) == 0 {
		t.Error("empty merge must report unset fields")
	}
	for _, k := range diags.Unset {
		if slot := rec.Slot(k); slot == nil || slot.Set {
			t.Errorf("unset list names a set or unknown slot %q", k)
		}
	}
}
