package match

import "testing"

func TestFieldFirstMatchWins(t *testing.T) {
	patterns := []Pattern{
		P(`Strict Label:\s*(\d+)`, CleanDigits),
		P(`(\d+)`, CleanDigits),
	}
	got, ok := Field("Strict Label: 123 and later 456", "acct", patterns)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.CleanedValue != "123" {
		t.Errorf("CleanedValue = %q, want %q", got.CleanedValue, "123")
	}
	if got.PatternRank != 0 {
		t.Errorf("PatternRank = %d, want 0", got.PatternRank)
	}
}

func TestFieldFallsThroughToLooserPattern(t *testing.T) {
	patterns := []Pattern{
		P(`Strict Label:\s*(\d+)`, CleanDigits),
		P(`value\s+(\d+)`, CleanDigits),
	}
	got, ok := Field("no label here, just value 456", "acct", patterns)
	if !ok {
		t.Fatal("expected the second pattern to match")
	}
	if got.CleanedValue != "456" {
		t.Errorf("CleanedValue = %q, want %q", got.CleanedValue, "456")
	}
	if got.PatternRank != 1 {
		t.Errorf("PatternRank = %d, want 1", got.PatternRank)
	}
}

func TestFieldEmptyAfterCleanKeepsScanning(t *testing.T) {
	patterns := []Pattern{
		P(`Name:\s*([a-z ]*)`, CleanDigits), // cleans to "" for alphabetic capture
		P(`Code:\s*(\d+)`, CleanDigits),
	}
	got, ok := Field("Name: acme corp\nCode: 99", "code", patterns)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.CleanedValue != "99" || got.PatternRank != 1 {
		t.Errorf("got %q rank %d, want %q rank 1", got.CleanedValue, got.PatternRank, "99")
	}
}

func TestFieldNoMatch(t *testing.T) {
	if _, ok := Field("nothing relevant", "x", []Pattern{P(`(\d{5})`, nil)}); ok {
		t.Error("expected no match")
	}
	if _, ok := Field("", "x", []Pattern{P(`(\d)`, nil)}); ok {
		t.Error("expected no match on empty text")
	}
}

func TestFieldDeterministic(t *testing.T) {
	text := "Rent 100.00 also Rent 200.00"
	patterns := []Pattern{P(`Rent\s+([\d.]+)`, CleanAmount)}
	first, _ := Field(text, "rent", patterns)
	for i := 0; i < 10; i++ {
		again, _ := Field(text, "rent", patterns)
		if again != first {
			t.Fatalf("run %d: got %+v, want %+v", i, again, first)
		}
	}
}

func TestAllCollectsEveryLineItem(t *testing.T) {
	text := "Electricity 100.50\nOther 5.00\nElectricity 200.25"
	got := All(text, "elec", []Pattern{P(`Electricity\s+([\d,.]+)`, CleanAmount)})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].CleanedValue != "100.50" || got[1].CleanedValue != "200.25" {
		t.Errorf("values = %q, %q", got[0].CleanedValue, got[1].CleanedValue)
	}
}

func TestCleaners(t *testing.T) {
	tests := []struct {
		name  string
		clean CleanFunc
		in    string
		want  string
	}{
		{"space", CleanSpace, "  Acme   Trading  (Pty) Ltd ", "Acme Trading (Pty) Ltd"},
		{"digits", CleanDigits, "62 345 678 901", "62345678901"},
		{"amount", CleanAmount, "R 45,000.00", "45000.00"},
		{"upper", CleanUpper, " acme  trading ", "ACME TRADING"},
	}
	for _, tt := range tests {
		if got := tt.clean(tt.in); got != tt.want {
			t.Errorf("%s(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}
