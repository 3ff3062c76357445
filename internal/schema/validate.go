package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// maxSafeInteger is the largest integer a float64 holds exactly (2^53 - 1).
const maxSafeInteger = 1<<53 - 1

// Issue is a single validation failure at a field path such as
// "filters[2].name". The root value has an empty path.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	path := i.Path
	if path == "" {
		path = "(root)"
	}
	return path + ": " + i.Message
}

// ValidationError reports every issue found while checking a value.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return "invalid arguments: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Validate checks value without producing a cleaned copy.
func (v *Validator) Validate(value any) error {
	_, err := v.Parse(value)
	return err
}

// Parse validates value and returns a cleaned copy: undeclared object keys are
// dropped, absent optional fields take their schema default, and numbers are
// normalized to float64. Objects that declare no properties are copied as is.
func (v *Validator) Parse(value any) (any, error) {
	var issues []Issue
	out := v.parse(value, "", &issues)
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return out, nil
}

func (v *Validator) parse(value any, path string, issues *[]Issue) any {
	fail := func(format string, args ...any) {
		*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	switch v.kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			fail("expected string, received %s", typeName(value))
			return nil
		}
		if len(v.enum) > 0 && !slices.Contains(v.enum, s) {
			fail("must be one of [%s], received %q", strings.Join(v.enum, ", "), s)
		}
		return s

	case KindNumber, KindInteger:
		f, ok := toFloat(value)
		if !ok {
			fail("expected %s, received %s", v.kind, typeName(value))
			return nil
		}
		if v.kind == KindInteger {
			if f != math.Trunc(f) {
				fail("expected integer, received %s", formatNumber(f))
			} else if math.Abs(f) > maxSafeInteger {
				fail("integer %s is outside the safe range", formatNumber(f))
			}
		}
		if v.minimum != nil && f < *v.minimum {
			fail("must be greater than or equal to %s", formatNumber(*v.minimum))
		}
		if v.maximum != nil && f > *v.maximum {
			fail("must be less than or equal to %s", formatNumber(*v.maximum))
		}
		return f

	case KindBoolean:
		b, ok := value.(bool)
		if !ok {
			fail("expected boolean, received %s", typeName(value))
			return nil
		}
		return b

	case KindArray:
		elems, ok := toSlice(value)
		if !ok {
			fail("expected array, received %s", typeName(value))
			return nil
		}
		out := make([]any, len(elems))
		for i, elem := range elems {
			out[i] = v.items.parse(elem, fmt.Sprintf("%s[%d]", path, i), issues)
		}
		return out

	case KindObject:
		obj, ok := value.(map[string]any)
		if !ok {
			fail("expected object, received %s", typeName(value))
			return nil
		}
		// an object without declared properties keeps every member
		if len(v.fields) == 0 {
			out := make(map[string]any, len(obj))
			for k, val := range obj {
				out[k] = val
			}
			return out
		}
		out := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			fieldPath := joinPath(path, f.Name)
			fv, present := obj[f.Name]
			if !present || fv == nil {
				if f.Required {
					*issues = append(*issues, Issue{Path: fieldPath, Message: "required"})
					continue
				}
				if def := f.Validator.def; def != nil {
					out[f.Name] = def
				}
				continue
			}
			out[f.Name] = f.Validator.parse(fv, fieldPath, issues)
		}
		return out

	default:
		return value
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	}
	if _, ok := toFloat(value); ok {
		return "number"
	}
	if _, ok := toSlice(value); ok {
		return "array"
	}
	return fmt.Sprintf("%T", value)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

func toSlice(value any) ([]any, bool) {
	if s, ok := value.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
