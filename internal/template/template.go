// Package template extracts {placeholder} names from server host templates
// and channel addresses.
package template

import "regexp"

// PlaceholderRegex matches template placeholders like {name}.
// It captures the placeholder name inside the braces.
var PlaceholderRegex = regexp.MustCompile(`\{([^}]+)\}`)

// Placeholders returns the distinct placeholder names in s, in order of first appearance.
func Placeholders(s string) []string {
	matches := PlaceholderRegex.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		name := match[1]
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Set returns the placeholder names in s as a set.
func Set(s string) map[string]struct{} {
	names := Placeholders(s)
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Expand replaces each placeholder with its value from vars.
// Placeholders without a value are left untouched.
func Expand(s string, vars map[string]string) string {
	return PlaceholderRegex.ReplaceAllStringFunc(s, func(m string) string {
		if v, ok := vars[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
