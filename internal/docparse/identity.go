package docparse

import (
	"regexp"
	"strings"

	"github.com/reflectall/leasegen/constants"
	"github.com/reflectall/leasegen/internal/match"
)

func cleanPhone(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// identityExtractor parses FICA compliance forms and CIPC registration
// documents for the tenant's identity and banking fields.
var identityExtractor = &Extractor{
	Kind: constants.KindIdentityFICA,
	Specs: []FieldSpec{
		{Key: "tenant.name", Patterns: []match.Pattern{
			match.P(`(?i)(?:company\s+name|entity\s+name|registered\s+name|name\s+of\s+(?:company|entity))[:\s]+([^\n]+)`, match.CleanSpace),
			match.P(`(?m)^([A-Z][A-Z\s&()]+(?:PTY|LTD|CC|PROPRIETARY|LIMITED|CLOSE\s+CORPORATION))\s*$`, match.CleanSpace),
		}},
		{Key: "tenant.trading_as", Patterns: []match.Pattern{
			match.P(`(?i)(?:trading\s+as|trading\s+name|trade\s+name)[:\s]+([^\n]+)`, match.CleanSpace),
		}},
		{Key: "tenant.reg_no", Patterns: []match.Pattern{
			match.P(`(?i)(?:registration\s+number|reg\.?\s*no|company\s+reg)[:\s#]*([0-9]{4}/[0-9]{6,8}/[0-9]{2})`, match.CleanSpace),
			match.P(`\b([0-9]{4}/[0-9]{6,8}/[0-9]{2})\b`, match.CleanSpace),
		}},
		{Key: "tenant.vat_no", Patterns: []match.Pattern{
			match.P(`(?i)vat\s+(?:registration\s+)?(?:number|no)[:\s#]*([0-9]{10})`, match.CleanDigits),
			match.P(`(?i)vat[:\s]+([0-9]{10})`, match.CleanDigits),
			match.P(`\b([0-9]{10})\b`, match.CleanDigits),
		}},
		{Key: "tenant.id_number", Patterns: []match.Pattern{
			match.P(`(?i)(?:id\s+number|identity\s+number|id\s+no)[:\s#]*([0-9]{13})`, match.CleanDigits),
			match.P(`(?i)(?:id\s+number|identity\s+number|id\s+no)[:\s#]*([0-9]{6}\s+[0-9]{7})`, match.CleanDigits),
			match.P(`\b([0-9]{13})\b`, match.CleanDigits),
		}},
		{Key: "tenant.phone", Patterns: []match.Pattern{
			match.P(`(?i)(?:tel(?:ephone)?|phone|cell|contact\s+number)[:\s]+(\+?\d[\d\s\-()]{7,}\d)`, cleanPhone),
		}},
		{Key: "tenant.bank_name", Patterns: []match.Pattern{
			match.P(`(?i)bank\s+name[:\s]+([A-Za-z][A-Za-z ]+)`, match.CleanSpace),
			match.P(`(?i)\b(Nedbank|FNB|ABSA|Standard\s+Bank|Capitec|Investec)\b`, match.CleanSpace),
			match.P(`(?i)bank[:\s]+([A-Za-z]+)`, match.CleanSpace),
		}},
		{Key: "tenant.bank_branch", Patterns: []match.Pattern{
			match.P(`(?i)branch\s+name[:\s]+([A-Za-z][A-Za-z \-]+)`, match.CleanSpace),
		}},
		{Key: "tenant.branch_code", Patterns: []match.Pattern{
			match.P(`(?i)branch\s*code[:\s]*(\d{6})`, match.CleanDigits),
			match.P(`(?i)branch[:\s]*(\d{6})\b`, match.CleanDigits),
		}},
		{Key: "tenant.account_no", Patterns: []match.Pattern{
			match.P(`(?i)account\s*(?:number|no)[:\s]*(\d[\d\s]{6,}\d)`, match.CleanDigits),
			match.P(`(?i)acc(?:ount)?\s*no[:\s]*(\d+)`, match.CleanDigits),
		}},
		{Key: "tenant.account_type", Patterns: []match.Pattern{
			match.P(`(?i)account\s*type[:\s]+([A-Za-z][A-Za-z ]*)`, match.CleanSpace),
		}},
		{Key: "tenant.account_holder", Patterns: []match.Pattern{
			match.P(`(?i)account\s*(?:holder|name)[:\s]+([A-Za-z0-9][A-Za-z0-9 \-()]*)`, match.CleanSpace),
		}},
	},
	post: identityPost,
}

var (
	rePostalBlock   = regexp.MustCompile(`(?i)postal\s+address[:\s]*\n((?:[^\n]+\n?){1,6})`)
	rePhysicalBlock = regexp.MustCompile(`(?i)physical\s+address[:\s]*\n((?:[^\n]+\n?){1,6})`)
	reAddressNoise  = regexp.MustCompile(`(?i)^(same|postal|physical|contact|south\s+africa)$`)
	reCIPCKeywords  = regexp.MustCompile(`(?i)cipc|companies\s+and\s+intellectual\s+property|certificate\s+of\s+incorporation|registration\s+certificate|fica`)
	reRegNoShape    = regexp.MustCompile(`^\d{4}/\d{6,8}/\d{2}$`)
)

// identityPost collapses the multi-line address blocks and flags text that
// does not look like a CIPC/FICA document at all.
func identityPost(text string, fs *PartialFieldSet) {
	if addr := collapseAddress(rePostalBlock, text); addr != "" {
		fs.Fields["tenant.postal_address"] = addr
	}
	if addr := collapseAddress(rePhysicalBlock, text); addr != "" {
		fs.Fields["tenant.physical_address"] = addr
	}

	// trading name falls back to the legal name, as on the form itself
	if _, ok := fs.Fields["tenant.trading_as"]; !ok {
		if name, ok := fs.Fields["tenant.name"]; ok {
			fs.Fields["tenant.trading_as"] = name
		}
	}

	hasRegNo := reRegNoShape.MatchString(fs.Fields["tenant.reg_no"])
	hasName := len(fs.Fields["tenant.name"]) > 3
	if !(hasRegNo || (hasName && reCIPCKeywords.MatchString(text))) {
		fs.Notes = append(fs.Notes, "text does not look like a CIPC/FICA document")
	}
}

// collapseAddress joins the lines following an address label into one
// comma-delimited string, dropping filler lines.
func collapseAddress(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	var lines []string
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" || reAddressNoise.MatchString(line) {
			continue
		}
		lines = append(lines, line)
		if len(lines) == 6 {
			break
		}
	}
	return strings.Join(lines, ", ")
}
