// Package naming provides shared case conversion and type naming utilities.
package naming

import (
	"path"
	"reflect"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToPascalCase converts a string to PascalCase.
// Separators (underscore, hyphen, dot, slash) trigger capitalization of the next letter.
// Example: "user_profile" -> "UserProfile"
// Example: "api-client" -> "ApiClient"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	capitalizeNext := true

	for _, r := range s {
		if r == '_' || r == '-' || r == '.' || r == '/' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToCamelCase converts a string to camelCase.
// Example: "OrderCreated" -> "orderCreated"
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// Words splits an identifier into lowercase words at case changes and separators.
// Runs of uppercase letters stay together ("HTTPRequest" -> ["http", "request"]).
// Example: "OrderCreated" -> ["order", "created"]
func Words(s string) []string {
	var words []string
	var current []rune
	runes := []rune(s)
	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	for i, r := range runes {
		if r == '_' || r == '-' || r == '.' || r == '/' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextIsLower) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()
	return words
}

// Title converts an identifier into a human-readable title.
// Example: "OrderCreated" -> "Order Created"
// Example: "user_signed_up" -> "User Signed Up"
func Title(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	// cases.Caser is stateful, so each call gets its own.
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// TypeName returns the display name for a Go type, used in diagnostics.
// Named types are qualified by their package name ("orders.Created");
// pointers are unwrapped; unnamed types use their Go syntax ("[]string").
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return path.Base(t.PkgPath()) + "." + t.Name()
}

// ComponentName returns a component-safe name for a Go type.
// Generic brackets and commas are replaced so the result can appear in a $ref.
// Example: Envelope[orders.Created] -> "Envelope_Created"
func ComponentName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" {
		return ""
	}
	base, params, isGeneric := strings.Cut(name, "[")
	if !isGeneric {
		return name
	}
	params = strings.TrimSuffix(params, "]")
	var sb strings.Builder
	sb.WriteString(base)
	for _, param := range splitTypeParams(params) {
		if idx := strings.LastIndex(param, "."); idx != -1 {
			param = param[idx+1:]
		}
		sb.WriteByte('_')
		sb.WriteString(sanitize(param))
	}
	return sb.String()
}

// splitTypeParams splits a type parameter list at top-level commas.
func splitTypeParams(s string) []string {
	var params []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				params = append(params, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(s[start:]); rest != "" {
		params = append(params, rest)
	}
	return params
}

func sanitize(name string) string {
	name = strings.NewReplacer("[", "_", "]", "_", ",", "_", " ", "_", "*", "").Replace(name)
	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	return strings.TrimSuffix(name, "_")
}
