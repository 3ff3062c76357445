package schema

import (
	"slices"
	"sort"
)

// Kind identifies what a Validator accepts.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindNumber
	KindInteger
	KindBoolean
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "any"
	}
}

// Field is one declared property of an object validator.
type Field struct {
	Name      string
	Required  bool
	Validator *Validator
}

// Validator is the runtime form of a translated schema node. It is immutable
// and safe for concurrent use.
type Validator struct {
	kind        Kind
	description string
	enum        []string
	minimum     *float64
	maximum     *float64
	def         any
	items       *Validator
	fields      []Field
}

// Any returns a validator that accepts every value.
func Any() *Validator {
	return &Validator{kind: KindAny}
}

// Translate converts a schema node into a validator. It never fails: a nil
// node or an unrecognized type becomes an accept-anything validator.
func Translate(n *Node) *Validator {
	if n == nil {
		return Any()
	}

	v := &Validator{
		description: n.Description,
		def:         n.Default,
	}

	switch n.Type {
	case "string":
		v.kind = KindString
		// enum wins over a free-form string
		if len(n.Enum) > 0 {
			v.enum = slices.Clone(n.Enum)
		}
	case "number", "integer":
		v.kind = KindNumber
		if n.Type == "integer" {
			v.kind = KindInteger
		}
		v.minimum = cloneFloat(n.Minimum)
		v.maximum = cloneFloat(n.Maximum)
	case "boolean":
		v.kind = KindBoolean
	case "array":
		v.kind = KindArray
		v.items = Translate(n.Items)
	case "object":
		v.kind = KindObject
		v.fields = translateFields(n)
	default:
		v.kind = KindAny
	}

	return v
}

// translateFields splits the declared properties into required and optional
// fields. Names listed in required without a matching property are ignored.
func translateFields(n *Node) []Field {
	if len(n.Properties) == 0 {
		return nil
	}

	names := make([]string, 0, len(n.Properties))
	for name := range n.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{
			Name:      name,
			Required:  slices.Contains(n.Required, name),
			Validator: Translate(n.Properties[name]),
		})
	}
	return fields
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

func (v *Validator) Kind() Kind          { return v.kind }
func (v *Validator) Description() string { return v.description }
func (v *Validator) Default() any        { return v.def }
func (v *Validator) Items() *Validator   { return v.items }

// Enum returns the closed set of accepted strings, or nil.
func (v *Validator) Enum() []string {
	return slices.Clone(v.enum)
}

// Bounds returns the inclusive numeric bounds; either may be nil.
func (v *Validator) Bounds() (minimum, maximum *float64) {
	return cloneFloat(v.minimum), cloneFloat(v.maximum)
}

// Fields returns the object fields sorted by name.
func (v *Validator) Fields() []Field {
	return slices.Clone(v.fields)
}

// Field looks up a declared object field by name.
func (v *Validator) Field(name string) (Field, bool) {
	for _, f := range v.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RequiredFields lists the mandatory field names in sorted order.
func (v *Validator) RequiredFields() []string {
	var out []string
	for _, f := range v.fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}
