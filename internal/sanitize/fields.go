package sanitize

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxLength applies to string fields declared without a MaxLength.
	DefaultMaxLength = 500
	// MaxEmailLength is the longest accepted email address.
	MaxEmailLength = 254
)

var emailRegex = regexp.MustCompile(`^[^\s\x0B\p{Z}\x{FEFF}@]+@[^\s\x0B\p{Z}\x{FEFF}@]+\.[^\s\x0B\p{Z}\x{FEFF}@]+$`)

// dateLayouts are the formats IsValidDate accepts, ISO-8601 forms first.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01",
	"2006",
	"2006-1-2",
	"2006/1/2",
	"1-2-2006",
	"1/2/2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon Jan 02 2006",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	time.RFC850,
	time.ANSIC,
}

// SanitizeString trims v and returns it HTML-escaped. It reports false when v
// is not a string, is blank after trimming, or is longer than maxLength.
// A maxLength of zero or less means DefaultMaxLength.
func SanitizeString(v any, maxLength int) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	trimmed := trimText(s)
	n := textLength(trimmed)
	if n == 0 || n > maxLength {
		return "", false
	}
	return EscapeHTML(trimmed), true
}

// IsValidEmail reports whether s looks like local@domain.tld and is at most
// MaxEmailLength long. It is a shape check, not an RFC 5322 parser.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s) && textLength(s) <= MaxEmailLength
}

// IsValidDate reports whether s parses as a calendar date in one of the
// accepted layouts.
func IsValidDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

// ParseDate parses s with the first matching accepted layout.
func ParseDate(s string) (time.Time, bool) {
	s = trimText(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// trimText strips Unicode white space and the byte order mark from both ends.
func trimText(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

// textLength counts UTF-16 code units so limits match the browser client.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		if r == utf8.RuneError {
			n++
			continue
		}
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
