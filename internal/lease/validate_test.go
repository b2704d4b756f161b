package lease

import "testing"

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"45000", "45000.00", false},
		{"R 45,000.00", "45000.00", false},
		{"5146.68", "5146.68", false},
		{"22730.5", "22730.50", false},
		{"0", "0.00", false},
		{"-100", "", true},
		{"12.345", "", true},
		{"abc", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeAmount(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeAmount(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeAmount(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string // ISO; "" = error expected
	}{
		{"2026-03-01", "2026-03-01"},
		{"01/03/2026", "2026-03-01"},
		{"1/3/2026", "2026-03-01"},
		{"01 March 2026", "2026-03-01"},
		{"01 MARCH 2026", "2026-03-01"},
		{"28 february 2027", "2027-02-28"},
		{"soon", ""},
		{"", ""},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if tt.want == "" {
			if err == nil {
				t.Errorf("ParseDate(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q) error: %v", tt.in, err)
			continue
		}
		if iso := got.Format("2006-01-02"); iso != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, iso, tt.want)
		}
	}
}

func TestApplyValidatesByType(t *testing.T) {
	r := NewRecord()

	if d := r.Apply("financial.rent", "R 22,730.00", "tenant_invoice"); d != nil {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if got := r.Financial.Rent; !got.Set || got.Value != "22730.00" || got.Source != "tenant_invoice" {
		t.Errorf("rent slot = %+v", got)
	}

	if d := r.Apply("lease.start_date", "01 MARCH 2026", "input"); d != nil {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if r.Lease.StartDate.Value != "2026-03-01" {
		t.Errorf("start date = %q", r.Lease.StartDate.Value)
	}
}

func TestApplyCoercesInvalidToUnset(t *testing.T) {
	r := NewRecord()
	d := r.Apply("financial.deposit", "not money", "tenant_invoice")
	if d == nil || d.Kind != DiagCoercion {
		t.Fatalf("diagnostic = %+v, want coercion", d)
	}
	if r.Financial.Deposit.Set {
		t.Error("invalid amount must leave the slot unset")
	}

	if d := r.Apply("bogus.key", "x", "input"); d == nil {
		t.Error("unknown key must produce a diagnostic")
	}
}

func TestValidateEndBeforeStart(t *testing.T) {
	r := NewRecord()
	if d := r.Apply("lease.start_date", "2029-03-01", "input"); d != nil {
		t.Fatal(d.Message)
	}
	if d := r.Apply("lease.end_date", "2026-02-28", "input"); d != nil {
		t.Fatal(d.Message)
	}
	diags := r.Validate()
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	if diags[0].Kind != DiagValidation || diags[0].Field != "lease.end_date" {
		t.Errorf("diagnostic = %+v", diags[0])
	}

	// swap to a sane range: no findings
	_ = r.Apply("lease.start_date", "2026-03-01", "input")
	_ = r.Apply("lease.end_date", "2029-02-28", "input")
	if diags := r.Validate(); len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %+v", diags)
	}
}

func TestUnsetListsMissingFieldsInSchemaOrder(t *testing.T) {
	r := NewRecord()
	_ = r.Apply("tenant.name", "Acme Trading (Pty) Ltd", "input")
	unset := r.Unset()
	if len(unset) != len(Keys())-1 {
		t.Fatalf("unset = %d, want %d", len(unset), len(Keys())-1)
	}
	for _, k := range unset {
		if k == "tenant.name" {
			t.Error("tenant.name should not be listed as unset")
		}
	}
}
