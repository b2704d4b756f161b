package ollama

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strings"
)

// synonyms the models actually emit, renamed to our field names.
var fieldSynonyms = map[string]string{
	"company_name":        "legal_name",
	"name":                "legal_name",
	"entity_name":         "legal_name",
	"registration_number": "reg_no",
	"registration_no":     "reg_no",
	"vat_number":          "vat_no",
	"trading_name":        "trading_as",
	"identity_number":     "id_number",
	"telephone":           "phone",
	"contact_number":      "phone",
	"bank":                "bank_name",
	"account_number":      "account_no",
}

// sanitizeModelJSON normalizes raw model output before schema validation:
// strips markdown fences, renames known synonyms, coerces numbers to
// strings, drops nulls, empties and unknown keys, and trims the rest.
func sanitizeModelJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(stripFences(raw), &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 8)

	for from, to := range fieldSynonyms {
		if v, ok := m[from]; ok {
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}

	allowed := make(map[string]struct{}, len(identityFields))
	for _, f := range identityFields {
		allowed[f] = struct{}{}
	}
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	for k, v := range maps.Clone(m) {
		switch t := v.(type) {
		case string:
			s := strings.TrimSpace(t)
			if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "n/a") {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		case float64:
			// identifiers come back as numbers often enough to matter
			m[k] = strings.TrimSuffix(fmt.Sprintf("%.0f", t), ".")
		case nil:
			delete(m, k)
			dropped = append(dropped, k+"(null)")
		default:
			delete(m, k)
			dropped = append(dropped, k+"(type)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Debug("ollama.fields.sanitized", "dropped", dropped)
	}
	return out, dropped, nil
}

// stripFences removes a ```json ... ``` wrapper some models insist on.
func stripFences(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return []byte(strings.TrimSpace(s))
}
