package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// identityFields is the JSON shape we ask the model for when parsing a
// FICA/identity document. Keys line up with the canonical tenant group.
var identityFields = []string{
	"legal_name",
	"reg_no",
	"vat_no",
	"trading_as",
	"id_number",
	"phone",
	"postal_address",
	"physical_address",
	"bank_name",
	"account_no",
	"branch_code",
}

// canonicalKey maps a model response key to its slot in the merged record.
var canonicalKey = map[string]string{
	"legal_name":       "tenant.name",
	"reg_no":           "tenant.reg_no",
	"vat_no":           "tenant.vat_no",
	"trading_as":       "tenant.trading_as",
	"id_number":        "tenant.id_number",
	"phone":            "tenant.phone",
	"postal_address":   "tenant.postal_address",
	"physical_address": "tenant.physical_address",
	"bank_name":        "tenant.bank_name",
	"account_no":       "tenant.account_no",
	"branch_code":      "tenant.branch_code",
}

func buildPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Extract the following information from this South African FICA/identity document text.\n")
	b.WriteString("Return ONLY a valid JSON object with these string fields: ")
	b.WriteString(strings.Join(identityFields, ", "))
	b.WriteString(".\nIf a field is not found, use empty string \"\".\n\nDocument text:\n")
	b.WriteString(text)
	b.WriteString("\n\nReturn JSON only, no other text:")
	return b.String()
}

// ParseIdentityFields asks the model to structure identity-document text.
// The response is schema-validated before anything is trusted; cleaned
// non-empty values come back keyed by canonical field name.
func (c *Client) ParseIdentityFields(ctx context.Context, text string) (map[string]string, error) {
	raw, err := c.generate(ctx, buildPrompt(text))
	if err != nil {
		return nil, fmt.Errorf("ollama generate: %w", err)
	}

	clean, _, err := sanitizeModelJSON([]byte(raw), c.log)
	if err != nil {
		return nil, err
	}
	if err := validateIdentityJSON(clean); err != nil {
		c.log.Warn("ollama.fields.schema_invalid", "error", err)
		return nil, fmt.Errorf("model output failed schema validation: %w", err)
	}

	var parsed map[string]string
	if err := json.Unmarshal(clean, &parsed); err != nil {
		return nil, fmt.Errorf("decode model output: %w", err)
	}

	out := make(map[string]string, len(parsed))
	for k, v := range parsed {
		key, ok := canonicalKey[k]
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out[key] = v
	}
	return out, nil
}
