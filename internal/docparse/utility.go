package docparse

import (
	"regexp"
	"strings"

	"github.com/reflectall/leasegen/constants"
	"github.com/reflectall/leasegen/internal/match"
)

var reRunsOfSpace = regexp.MustCompile(`\s+`)

// utilityPrep flattens the statement's tabular layout: whitespace runs
// collapse to one space and thousands separators disappear, so a charge
// row reads "Electricity 4475.37 671.31 5146.68" regardless of the
// municipality's column formatting.
func utilityPrep(text string) string {
	text = reRunsOfSpace.ReplaceAllString(text, " ")
	return strings.ReplaceAll(text, ",", "")
}

// utilityExtractor reads a municipal or body-corporate statement. Charge
// rows carry excl/VAT/incl columns; the exclusive column (the first) is
// the one the lease schedule wants.
var utilityExtractor = &Extractor{
	Kind: constants.KindUtilityStatement,
	prep: utilityPrep,
	Specs: []FieldSpec{
		{Key: "financial.utilities.electricity", Amount: true, Patterns: []match.Pattern{
			match.P(`(?i)electricity\s+(\d+\.?\d*)\s+\d+\.?\d*\s+\d+\.?\d*`, match.CleanAmount),
			match.P(`(?i)electricity[:\s]+R?\s*(\d+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)elec(?:tricity)?\s+(?:charge|usage)[:\s]+R?\s*(\d+\.?\d*)`, match.CleanAmount),
		}},
		{Key: "financial.utilities.water", Amount: true, Patterns: []match.Pattern{
			match.P(`(?i)water\s+(\d+\.?\d*)\s+\d+\.?\d*\s+\d+\.?\d*`, match.CleanAmount),
			match.P(`(?i)water[:\s]+R?\s*(\d+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)water\s+(?:charge|usage)[:\s]+R?\s*(\d+\.?\d*)`, match.CleanAmount),
		}},
		{Key: "financial.utilities.sewerage", Amount: true, Patterns: []match.Pattern{
			match.P(`(?i)sewerage\s+(\d+\.?\d*)\s+\d+\.?\d*\s+\d+\.?\d*`, match.CleanAmount),
			match.P(`(?i)sewerage[:\s]+R?\s*(\d+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)sewer(?:age)?\s+charge[:\s]+R?\s*(\d+\.?\d*)`, match.CleanAmount),
		}},
		{Key: "financial.utilities.municipal", Amount: true, Patterns: []match.Pattern{
			match.P(`(?i)municipal\s+charges?\s+(\d+\.?\d*)\s+\d+\.?\d*\s+\d+\.?\d*`, match.CleanAmount),
			match.P(`(?i)municipal[:\s]+R?\s*(\d+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)(?:property\s+)?rates?[:\s]+R?\s*(\d+\.?\d*)`, match.CleanAmount),
		}},
		{Key: "financial.utilities.refuse", Amount: true, Patterns: []match.Pattern{
			match.P(`(?i)refuse\s+(\d+\.?\d*)\s+\d+\.?\d*\s+\d+\.?\d*`, match.CleanAmount),
			match.P(`(?i)refuse[:\s]+R?\s*(\d+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)refuse\s+(?:removal|collection)[:\s]+R?\s*(\d+\.?\d*)`, match.CleanAmount),
		}},
		{Key: "financial.rent", Amount: true, Patterns: []match.Pattern{
			match.P(`(?i)rent\s+(\d+\.?\d*)\s+\d+\.?\d*\s+\d+\.?\d*`, match.CleanAmount),
			match.P(`(?i)basic\s+rent[:\s]+R?\s*(\d+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)rent[:\s]+R?\s*(\d+\.?\d*)`, match.CleanAmount),
		}},
		{Key: "financial.utilities.total_due", Amount: true, Patterns: []match.Pattern{
			match.P(`(?i)amount\s+due\s+R?\s*(\d+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)total\s+due[:\s]+R?\s*(\d+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)balance\s+due[:\s]+R?\s*(\d+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)total[:\s]+R?\s*(\d+\.?\d*)`, match.CleanAmount),
		}},
		{Key: "financial.utilities.statement_date", Date: true, Patterns: []match.Pattern{
			match.P(`(?i)statement\s+(?:date|period)[:\s]+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`, match.CleanSpace),
			match.P(`(?i)invoice\s+date[:\s]+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`, match.CleanSpace),
			match.P(`(?i)date[:\s]+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`, match.CleanSpace),
		}},
		{Key: "financial.utilities.account_number", Patterns: []match.Pattern{
			match.P(`(?i)account\s+(?:no|number|#)[:\s]+(\d+)`, match.CleanDigits),
			match.P(`(?i)customer\s+(?:no|number)[:\s]+(\d+)`, match.CleanDigits),
			match.P(`(?i)acc(?:ount)?[:\s]+(\d+)`, match.CleanDigits),
		}},
	},
}
