package docparse

import (
	"os"
	"path/filepath"
	"testing"
)

func writeOverrides(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func savePatterns(t *testing.T, ext *Extractor, key string) {
	t.Helper()
	for i := range ext.Specs {
		if ext.Specs[i].Key == key {
			saved := ext.Specs[i].Patterns
			idx := i
			t.Cleanup(func() { ext.Specs[idx].Patterns = saved })
			return
		}
	}
	t.Fatalf("no spec for %s", key)
}

func TestLoadOverridesReplacesPatternList(t *testing.T) {
	savePatterns(t, utilityExtractor, "financial.utilities.account_number")
	path := writeOverrides(t, `
kinds:
  utility_statement:
    financial.utilities.account_number:
      - pattern: 'Portfolio\s+Ref[:\s]+(\d+)'
        clean: digits
`)
	if err := LoadOverrides(path); err != nil {
		t.Fatal(err)
	}

	fs := utilityExtractor.Parse("Portfolio Ref: 555001\nAccount Number: 999")
	if got := fs.Fields["financial.utilities.account_number"]; got != "555001" {
		t.Errorf("account_number = %q, want the override to win", got)
	}
}

func TestLoadOverridesRejectsBadRegex(t *testing.T) {
	path := writeOverrides(t, `
kinds:
  utility_statement:
    financial.utilities.account_number:
      - pattern: '([unclosed'
`)
	if err := LoadOverrides(path); err == nil {
		t.Error("expected compile error")
	}
}

func TestLoadOverridesRejectsUnknownKind(t *testing.T) {
	path := writeOverrides(t, `
kinds:
  shopping_list:
    some.field:
      - pattern: '(\d+)'
`)
	if err := LoadOverrides(path); err == nil {
		t.Error("expected unknown-kind error")
	}
}

func TestLoadOverridesUnknownCleaner(t *testing.T) {
	path := writeOverrides(t, `
kinds:
  utility_statement:
    financial.utilities.account_number:
      - pattern: '(\d+)'
        clean: sparkle
`)
	if err := LoadOverrides(path); err == nil {
		t.Error("expected unknown-cleaner error")
	}
}
