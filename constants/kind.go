package constants

import "strings"

// DocumentKind is the declared type of an uploaded source document.
type DocumentKind string

// Stable values (these exact strings appear in diagnostics output).
const (
	KindIdentityFICA     DocumentKind = "identity_fica"
	KindTenantInvoice    DocumentKind = "tenant_invoice"
	KindLandlordInvoice  DocumentKind = "landlord_invoice"
	KindUtilityStatement DocumentKind = "utility_statement"
	KindUnknown          DocumentKind = "unknown"
)

var allKinds = []DocumentKind{
	KindIdentityFICA,
	KindTenantInvoice,
	KindLandlordInvoice,
	KindUtilityStatement,
}

// ParseKind canonicalizes a kind string. Unrecognized input maps to KindUnknown.
func ParseKind(s string) DocumentKind {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, k := range allKinds {
		if normalized == string(k) {
			return k
		}
	}
	// common aliases from the upload wizard's slot names
	switch normalized {
	case "cipc", "fica", "id", "identity":
		return KindIdentityFICA
	case "invoice", "tenant":
		return KindTenantInvoice
	case "landlord", "management_invoice":
		return KindLandlordInvoice
	case "utility", "municipal", "statement":
		return KindUtilityStatement
	}
	return KindUnknown
}

// InferKind guesses a document kind from its filename when the caller
// declared none. Matching is keyword based; the first hit wins.
func InferKind(filename string) DocumentKind {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "fica"), strings.Contains(name, "cipc"),
		strings.Contains(name, "identity"), strings.Contains(name, "id_"):
		return KindIdentityFICA
	case strings.Contains(name, "utility"), strings.Contains(name, "municipal"),
		strings.Contains(name, "statement"):
		return KindUtilityStatement
	case strings.Contains(name, "landlord"), strings.Contains(name, "lessor"):
		return KindLandlordInvoice
	case strings.Contains(name, "invoice"), strings.Contains(name, "tenant"):
		return KindTenantInvoice
	default:
		return KindUnknown
	}
}
