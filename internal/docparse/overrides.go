package docparse

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/reflectall/leasegen/constants"
	"github.com/reflectall/leasegen/internal/match"
)

// overrideFile is the on-disk shape of a pattern override table. Operators
// tune patterns per site without a rebuild; an override replaces the whole
// built-in list for that field, keeping first-match-wins semantics intact.
type overrideFile struct {
	Kinds map[string]map[string][]overrideEntry `yaml:"kinds"`
}

type overrideEntry struct {
	Pattern string `yaml:"pattern"`
	Clean   string `yaml:"clean"` // space, digits, amount or upper
}

var cleanByName = map[string]match.CleanFunc{
	"":       match.CleanSpace,
	"space":  match.CleanSpace,
	"digits": match.CleanDigits,
	"amount": match.CleanAmount,
	"upper":  match.CleanUpper,
}

// LoadOverrides reads a YAML pattern table and applies it to the built-in
// extractors. Every pattern must compile; a bad file leaves the built-ins
// untouched.
func LoadOverrides(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read pattern overrides: %w", err)
	}
	var of overrideFile
	if err := yaml.Unmarshal(raw, &of); err != nil {
		return fmt.Errorf("parse pattern overrides: %w", err)
	}

	// Compile everything first so a partially valid file cannot apply.
	type compiled struct {
		ext      *Extractor
		key      string
		patterns []match.Pattern
	}
	var pending []compiled
	for kindName, fields := range of.Kinds {
		ext := ForKind(constants.ParseKind(kindName))
		if ext == nil {
			return fmt.Errorf("pattern overrides: unknown document kind %q", kindName)
		}
		for key, entries := range fields {
			ps := make([]match.Pattern, 0, len(entries))
			for _, e := range entries {
				clean, ok := cleanByName[e.Clean]
				if !ok {
					return fmt.Errorf("pattern overrides: %s/%s: unknown cleaner %q", kindName, key, e.Clean)
				}
				re, err := regexp.Compile(e.Pattern)
				if err != nil {
					return fmt.Errorf("pattern overrides: %s/%s: %w", kindName, key, err)
				}
				ps = append(ps, match.Compiled(re, clean))
			}
			pending = append(pending, compiled{ext: ext, key: key, patterns: ps})
		}
	}

	for _, c := range pending {
		applyOverride(c.ext, c.key, c.patterns)
	}
	return nil
}

func applyOverride(ext *Extractor, key string, patterns []match.Pattern) {
	for i := range ext.Specs {
		if ext.Specs[i].Key == key {
			ext.Specs[i].Patterns = patterns
			return
		}
	}
	ext.Specs = append(ext.Specs, FieldSpec{Key: key, Patterns: patterns})
}
