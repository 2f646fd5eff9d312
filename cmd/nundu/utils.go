package main

import (
	"net/url"
	"strings"
	"unicode"
)

func setIfNotEmpty(values url.Values, key, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	values.Set(key, value)
}

// flagName turns a camelCase field name into a kebab-case flag name.
func flagName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// fieldName maps snake_case, kebab-case or camelCase keys onto the
// camelCase field names records use.
func fieldName(key string) string {
	key = strings.TrimSpace(key)
	var b strings.Builder
	upper := false
	for _, r := range key {
		if r == '_' || r == '-' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
