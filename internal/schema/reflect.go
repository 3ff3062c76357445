package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Reflect derives the JSON schema of a tool input struct as a plain map, the
// same shape external tool definitions arrive in. Fields are required only
// when tagged `jsonschema:"required"`.
func Reflect[T any]() map[string]any {
	r := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		ExpandedStruct:             true,
		Anonymous:                  true,
	}

	var v T
	s := r.Reflect(v)

	data, err := json.Marshal(s)
	if err != nil {
		return map[string]any{"type": "object"}
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return map[string]any{"type": "object"}
	}
	delete(out, "$schema")
	delete(out, "$id")
	return out
}
