package ollama

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// identitySchema rejects model output that is not a flat object of strings.
// additionalProperties stays open: models tack on extra keys and we drop
// them during mapping rather than failing the parse.
var identitySchema = func() *jsonschema.Schema {
	props := make(map[string]any, len(identityFields))
	for _, f := range identityFields {
		props[f] = map[string]any{"type": "string"}
	}
	doc := map[string]any{
		"$schema":    "https://json-schema.org/draft/2020-12/schema",
		"type":       "object",
		"properties": props,
	}
	bs, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("identity.json", strings.NewReader(string(bs))); err != nil {
		panic(err)
	}
	s, err := c.Compile("identity.json")
	if err != nil {
		panic(err)
	}
	return s
}()

func validateIdentityJSON(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}
	if err := identitySchema.Validate(v); err != nil {
		return err
	}
	return nil
}
