package sanitize

import (
	"errors"
	"sort"
	"strings"
)

// ErrUnknownEntity is returned by SchemaFor for an unsupported entity kind.
var ErrUnknownEntity = errors.New("unknown entity")

// JoinErrors renders field errors as "msg; msg" sorted by field name.
func JoinErrors(errs map[string]string) string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, errs[field])
	}
	return strings.Join(msgs, "; ")
}
