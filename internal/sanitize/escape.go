package sanitize

import "strings"

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// EscapeHTML replaces the markup-significant characters & < > " ' / with
// character references. Escaping is not idempotent: "&amp;" becomes
// "&amp;amp;".
func EscapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

// EscapeValue escapes v when it is a string and returns "" for anything else.
func EscapeValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return EscapeHTML(s)
}
