package docparse

import (
	"github.com/reflectall/leasegen/constants"
	"github.com/reflectall/leasegen/internal/match"
)

// Shared charge specs for invoice-style documents. Invoices repeat the
// electricity line per billing period, so that one sums; the rest take the
// first plausible figure.
func invoiceChargeSpecs() []FieldSpec {
	return []FieldSpec{
		{Key: "financial.rent", Amount: true, Patterns: []match.Pattern{
			match.P(`(?i)basic\s+rent[:\s]*R?\s*([\d,]+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)monthly\s+rent[:\s]*([\d,]+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)rental[:\s]*([\d,]+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)rent\s+([\d,]+\.?\d*)`, match.CleanAmount),
		}},
		{Key: "financial.deposit", Amount: true, Patterns: []match.Pattern{
			match.P(`(?i)deposit\s+[\d,]+\.?\d*\s+[\d,]+\.?\d*\s+([\d,]+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)deposit[:\s]+R?\s*([\d,]+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)bank\s+guarantee[:\s]*([\d,]+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)security\s+deposit[:\s]*([\d,]+\.?\d*)`, match.CleanAmount),
		}},
		{Key: "financial.utilities.electricity", Sum: true, Patterns: []match.Pattern{
			match.P(`(?i)electricity\s+([\d,]+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)elec(?:tric)?\s+charge[:\s]*([\d,]+\.?\d*)`, match.CleanAmount),
		}},
		{Key: "financial.utilities.water", Amount: true, Patterns: []match.Pattern{
			match.P(`(?i)water\s+([\d,]+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)water\s+charge[:\s]*([\d,]+\.?\d*)`, match.CleanAmount),
		}},
		{Key: "financial.utilities.sewerage", Amount: true, Patterns: []match.Pattern{
			match.P(`(?i)sewerage\s+([\d,]+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)sewer(?:age)?\s+charge[:\s]*([\d,]+\.?\d*)`, match.CleanAmount),
		}},
		{Key: "financial.utilities.municipal", Amount: true, Patterns: []match.Pattern{
			match.P(`(?i)municipal\s+charges?\s+([\d,]+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)rates\s+([\d,]+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)municipal[:\s]*([\d,]+\.?\d*)`, match.CleanAmount),
		}},
		{Key: "financial.utilities.refuse", Amount: true, Patterns: []match.Pattern{
			match.P(`(?i)refuse\s+([\d,]+\.?\d*)`, match.CleanAmount),
			match.P(`(?i)refuse\s+removal[:\s]*([\d,]+\.?\d*)`, match.CleanAmount),
		}},
	}
}

// tenantInvoiceExtractor reads an invoice issued TO the tenant: the charge
// lines plus the recipient identity and the payment-section bank details.
var tenantInvoiceExtractor = &Extractor{
	Kind: constants.KindTenantInvoice,
	Specs: append(invoiceChargeSpecs(), []FieldSpec{
		{Key: "tenant.name", Patterns: []match.Pattern{
			match.P(`(?i)recipient[:\s]*([A-Za-z0-9 ()]+(?:Pty|Ltd|PTY|LTD)[ \w]*)`, match.CleanSpace),
			match.P(`(?i)tenant[:\s]*([A-Za-z0-9 ()]+(?:Pty|Ltd)[ \w]*)`, match.CleanSpace),
			match.P(`(?i)\bto[:\s]+([A-Za-z0-9 ()]+(?:Pty|Ltd)[ \w]*)`, match.CleanSpace),
		}},
		{Key: "tenant.reg_no", Patterns: []match.Pattern{
			match.P(`(?i)recipient\s*reg\s*no[:\s]*([\d/]+)`, match.CleanSpace),
			match.P(`(?i)reg(?:istration)?\s*no[:\s]*([\d/]+)`, match.CleanSpace),
		}},
		{Key: "tenant.vat_no", Patterns: []match.Pattern{
			match.P(`(?i)recipient\s*vat\s*no[:\s]*(\d+)`, match.CleanDigits),
			match.P(`(?i)vat\s*no[:\s]*(\d+)`, match.CleanDigits),
		}},
		{Key: "tenant.bank_name", Patterns: []match.Pattern{
			match.P(`(?i)bank\s+name[:\s]+([A-Za-z][A-Za-z ]+)`, match.CleanSpace),
			match.P(`(?i)bank[:\s]+([A-Za-z]+(?: - [A-Za-z ]+)?)`, match.CleanSpace),
			match.P(`(?i)\b(Nedbank|FNB|ABSA|Standard\s+Bank|Capitec|Investec)\b`, match.CleanSpace),
		}},
		{Key: "tenant.account_no", Patterns: []match.Pattern{
			match.P(`(?i)account\s*(?:number|no)[:\s]*(\d[\d\s]+\d)`, match.CleanDigits),
			match.P(`(?i)acc(?:ount)?\s*no[:\s]*(\d+)`, match.CleanDigits),
			match.P(`(?i)account[:\s]*(\d{8,})`, match.CleanDigits),
		}},
		{Key: "tenant.branch_code", Patterns: []match.Pattern{
			match.P(`(?i)branch\s*code[:\s]*(\d+)`, match.CleanDigits),
			match.P(`(?i)branch\s*no[:\s]*(\d+)`, match.CleanDigits),
			match.P(`(?i)branch[:\s]*(\d{6})`, match.CleanDigits),
		}},
		{Key: "tenant.account_holder", Patterns: []match.Pattern{
			match.P(`(?i)account\s*name[:\s]*([A-Za-z0-9][A-Za-z0-9 \-()]*)`, match.CleanSpace),
			match.P(`(?i)acc\s*name[:\s]*([A-Za-z0-9][A-Za-z0-9 \-()]*)`, match.CleanSpace),
		}},
	}...),
}

// landlordInvoiceExtractor reads an invoice issued BY the landlord (the
// "Entity" block on a tax invoice and statement) for the landlord's
// identity and banking fields, alongside the same charge lines.
var landlordInvoiceExtractor = &Extractor{
	Kind: constants.KindLandlordInvoice,
	Specs: append(invoiceChargeSpecs(), []FieldSpec{
		{Key: "landlord.name", Patterns: []match.Pattern{
			match.P(`(?i)entity\s+([A-Za-z0-9 \-()]+?\(?(?:Pty|PTY)\)?\s*(?:Ltd|LTD)?)`, match.CleanSpace),
			match.P(`(?i)from[:\s]+([A-Za-z0-9 \-()]+?\(?(?:Pty|PTY)\)?\s*(?:Ltd|LTD)?)`, match.CleanSpace),
			match.P(`(?i)lessor[:\s]+([A-Za-z0-9 \-()]+?\(?(?:Pty|PTY)\)?\s*(?:Ltd|LTD)?)`, match.CleanSpace),
			match.P(`(?i)account\s*name[:\s]*([A-Za-z0-9][A-Za-z0-9 \-]*)`, match.CleanSpace),
		}},
		{Key: "landlord.vat_no", Patterns: []match.Pattern{
			match.P(`(?i)entity\s*vat\s*no\s+(\d+)`, match.CleanDigits),
			match.P(`(?i)vendor\s*vat\s*no[:\s]*(\d+)`, match.CleanDigits),
			match.P(`(?i)vat\s*registration[:\s]*(\d+)`, match.CleanDigits),
		}},
		{Key: "landlord.reg_no", Patterns: []match.Pattern{
			match.P(`(?i)entity\s*reg\s*no\s+([\d/]+)`, match.CleanSpace),
			match.P(`(?i)registration\s*no[:\s]*([\d/]+)`, match.CleanSpace),
			match.P(`(?i)company\s*reg[:\s]*([\d/]+)`, match.CleanSpace),
		}},
		{Key: "landlord.bank_name", Patterns: []match.Pattern{
			match.P(`(?i)bank[:\s]*([A-Za-z][A-Za-z \-]*?)[\s/]+branch\s*code`, match.CleanSpace),
			match.P(`(?i)bank[:\s]*([A-Za-z]+)`, match.CleanSpace),
		}},
		{Key: "landlord.branch_code", Patterns: []match.Pattern{
			match.P(`(?i)branch\s*code[:\s]*(\d+)`, match.CleanDigits),
		}},
		{Key: "landlord.account_no", Patterns: []match.Pattern{
			match.P(`(?i)account\s*number[:\s]*(\d+)`, match.CleanDigits),
			match.P(`(?i)acc\s*no[:\s]*(\d+)`, match.CleanDigits),
		}},
		{Key: "landlord.account_holder", Patterns: []match.Pattern{
			match.P(`(?i)account\s*name[:\s]*([A-Za-z0-9][A-Za-z0-9 \-]*)`, match.CleanSpace),
		}},
		{Key: "landlord.phone", Patterns: []match.Pattern{
			match.P(`(?i)tel(?:ephone)?[:\s]+(\d[\d\s\-]+\d)`, cleanPhone),
			match.P(`(?i)phone[:\s]+(\d[\d\s\-]+\d)`, cleanPhone),
		}},
	}...),
}
