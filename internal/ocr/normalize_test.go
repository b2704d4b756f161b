package ocr

import "testing"

func TestNormalize(t *testing.T) {
	in := "Line one\r\nLine\ttwo   with   runs\r\n\n\n\n\nLine three   \n"
	want := "Line one\nLine two with runs\n\nLine three"
	if got := Normalize(in); got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q", got)
	}
}

func TestHeuristicConfidenceScoresLeaseText(t *testing.T) {
	leaseish := `TAX INVOICE
Date: 15/02/2026
Entity Reg No 2001/654321/07
Rent R 22,730.00 incl VAT
`
	gibberish := "zzqx ppfl mmtr"

	hi := heuristicConfidence(leaseish)
	lo := heuristicConfidence(gibberish)
	if hi <= lo {
		t.Errorf("confidence(lease)=%v should exceed confidence(gibberish)=%v", hi, lo)
	}
	if lo != 0.2 {
		t.Errorf("gibberish base score = %v, want 0.2", lo)
	}
	if hi > 1.0 {
		t.Errorf("confidence must be capped at 1.0, got %v", hi)
	}
}
