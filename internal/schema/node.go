// Package schema turns JSON Schema tool definitions into runtime argument validators.
//
// Only the subset used by tool definitions is understood: string (optionally
// enumerated), number/integer with inclusive bounds, boolean, array with an
// item schema, and object with properties and a required list. Anything else
// translates to a validator that accepts every value.
package schema

import (
	"encoding/json"
	"math"
)

// Node is one node of a parsed input schema.
type Node struct {
	Type        string           `json:"type,omitempty"`
	Description string           `json:"description,omitempty"`
	Enum        []string         `json:"enum,omitempty"`
	Minimum     *float64         `json:"minimum,omitempty"`
	Maximum     *float64         `json:"maximum,omitempty"`
	Default     any              `json:"default,omitempty"`
	Items       *Node            `json:"items,omitempty"`
	Properties  map[string]*Node `json:"properties,omitempty"`
	Required    []string         `json:"required,omitempty"`
}

// FromJSON parses a raw JSON schema document. Malformed input yields nil,
// which translates to an accept-anything validator.
func FromJSON(data []byte) *Node {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	return FromMap(raw)
}

// FromAny accepts the shapes tool schemas usually arrive in: a decoded map,
// raw JSON bytes, or any value that marshals to a JSON object.
func FromAny(v any) *Node {
	switch s := v.(type) {
	case nil:
		return nil
	case *Node:
		return s
	case map[string]any:
		return FromMap(s)
	case json.RawMessage:
		return FromJSON(s)
	case []byte:
		return FromJSON(s)
	case string:
		return FromJSON([]byte(s))
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return FromJSON(data)
}

// FromMap converts a decoded JSON schema into a Node tree. Entries with the
// wrong shape are skipped rather than reported.
func FromMap(raw map[string]any) *Node {
	if raw == nil {
		return nil
	}
	n := &Node{}

	if t, ok := raw["type"].(string); ok {
		n.Type = t
	}
	if desc, ok := raw["description"].(string); ok {
		n.Description = desc
	}
	if enum, ok := raw["enum"].([]any); ok {
		n.Enum = make([]string, 0, len(enum))
		for _, e := range enum {
			if str, ok := e.(string); ok {
				n.Enum = append(n.Enum, str)
			}
		}
	}
	n.Minimum = number(raw["minimum"])
	n.Maximum = number(raw["maximum"])
	if def, ok := raw["default"]; ok {
		n.Default = def
	}

	if items, ok := raw["items"].(map[string]any); ok {
		n.Items = FromMap(items)
	}

	if props, ok := raw["properties"].(map[string]any); ok {
		n.Properties = make(map[string]*Node, len(props))
		for name, p := range props {
			if pMap, ok := p.(map[string]any); ok {
				n.Properties[name] = FromMap(pMap)
			}
		}
	}

	switch required := raw["required"].(type) {
	case []any:
		n.Required = make([]string, 0, len(required))
		for _, r := range required {
			if str, ok := r.(string); ok {
				n.Required = append(n.Required, str)
			}
		}
	case []string:
		n.Required = append([]string(nil), required...)
	}

	return n
}

func number(v any) *float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) {
		return nil
	}
	return &f
}
