package config

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
)

// GetKnownKeys returns all valid configuration keys based on the schema
func GetKnownKeys() map[string]bool {
	known := make(map[string]bool)
	addKnownKeysByType("", reflect.TypeOf(ConfigSchema{}), known)
	return known
}

// addKnownKeysByType recursively adds keys by examining struct fields
func addKnownKeysByType(prefix string, t reflect.Type, known map[string]bool) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := strings.ToLower(tag)
		if prefix != "" {
			key = prefix + "." + key
		}
		known[key] = true

		switch field.Type.Kind() {
		case reflect.Struct:
			addKnownKeysByType(key, field.Type, known)
		case reflect.Map:
			// For maps of structs, add their fields
			if field.Type.Elem().Kind() == reflect.Struct {
				addKnownKeysByType(key+".*", field.Type.Elem(), known)
			} else {
				known[key+".*"] = true
			}
		}
	}
}

// leafKeys lists the dotted mapstructure paths of every scalar or list field
// outside of maps. These are the keys that can be set from the environment.
func leafKeys() []string {
	var keys []string
	var walk func(prefix string, t reflect.Type)
	walk = func(prefix string, t reflect.Type) {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			tag := field.Tag.Get("mapstructure")
			if !field.IsExported() || tag == "" {
				continue
			}
			key := tag
			if prefix != "" {
				key = prefix + "." + tag
			}
			switch field.Type.Kind() {
			case reflect.Struct:
				walk(key, field.Type)
			case reflect.Map:
			default:
				keys = append(keys, key)
			}
		}
	}
	walk("", reflect.TypeOf(ConfigSchema{}))
	return keys
}

// matchesWildcard checks if a key matches a wildcard pattern
func matchesWildcard(pattern, key string) bool {
	pattern = strings.ToLower(pattern)
	key = strings.ToLower(key)

	patternParts := strings.Split(pattern, ".")
	keyParts := strings.Split(key, ".")

	if len(patternParts) != len(keyParts) {
		return false
	}

	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != keyParts[i] {
			return false
		}
	}
	return true
}

// IsKnownKey checks if a key is known, including wildcard matches
func IsKnownKey(known map[string]bool, key string) bool {
	if known[strings.ToLower(key)] {
		return true
	}

	for pattern := range known {
		if strings.Contains(pattern, "*") && matchesWildcard(pattern, key) {
			return true
		}
	}
	return false
}

// PrintConfig writes the configuration in YAML form, optionally annotating
// every value with the source it came from. A non-empty prefix such as
// "docs" or "mcpServers.git" limits the output to that subtree.
func (s *ConfigSchema) PrintConfig(w io.Writer, includeSources bool, prefix string) {
	p := &printer{
		w:              w,
		sources:        s.sources,
		includeSources: includeSources,
		prefix:         strings.ToLower(prefix),
	}
	p.printValue(reflect.ValueOf(*s), "", "", 0)
}

type printer struct {
	w              io.Writer
	sources        map[string][]configSource
	includeSources bool
	prefix         string
}

// selected reports whether path is inside the requested subtree or one of its
// ancestors.
func (p *printer) selected(path string) bool {
	if p.prefix == "" {
		return true
	}
	path = strings.ToLower(path)
	return path == p.prefix ||
		strings.HasPrefix(path, p.prefix+".") ||
		strings.HasPrefix(p.prefix, path+".")
}

func (p *printer) printValue(v reflect.Value, key, path string, indent int) {
	t := v.Type()
	pad := strings.Repeat("  ", indent)

	switch v.Kind() {
	case reflect.Struct:
		if key != "" {
			fmt.Fprintf(p.w, "%s%s:\n", pad, key)
			indent++
		}
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			tag := field.Tag.Get("mapstructure")
			if !field.IsExported() || tag == "" {
				continue
			}
			fieldValue := v.Field(i)
			if !fieldValue.IsZero() && p.selected(joinKey(path, tag)) {
				p.printValue(fieldValue, tag, joinKey(path, tag), indent)
			}
		}

	case reflect.Map:
		if key != "" {
			fmt.Fprintf(p.w, "%s%s:\n", pad, key)
			indent++
		}
		names := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			names = append(names, k.String())
		}
		sort.Strings(names)
		for _, name := range names {
			if p.selected(joinKey(path, name)) {
				p.printValue(v.MapIndex(reflect.ValueOf(name)), name, joinKey(path, name), indent)
			}
		}

	default:
		if isSecretKey(key) {
			fmt.Fprintf(p.w, "%s%s: [REDACTED]", pad, key)
		} else {
			fmt.Fprintf(p.w, "%s%s: %v", pad, key, v.Interface())
		}
		p.printSourceInfo(path)
		fmt.Fprintln(p.w)
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func (p *printer) printSourceInfo(path string) {
	if !p.includeSources {
		return
	}

	if sources, ok := p.sources[strings.ToLower(path)]; ok && len(sources) > 0 {
		fmt.Fprintf(p.w, " # (%s)", sources[len(sources)-1].source)
		return
	}
	fmt.Fprintf(p.w, " # (default)")
}

func isSecretKey(key string) bool {
	lower := strings.ToLower(key)
	return strings.Contains(lower, "key") ||
		strings.Contains(lower, "secret") ||
		strings.Contains(lower, "password") ||
		strings.Contains(lower, "token")
}
