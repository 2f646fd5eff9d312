package sanitize

import (
	"fmt"
	"strings"
)

// Result is the outcome of Sanitize. Exactly one of Data and Errors is non-nil.
type Result struct {
	Data   map[string]any
	Errors map[string]string
}

// Accepted reports whether every field passed validation.
func (r Result) Accepted() bool {
	return r.Errors == nil
}

// Summary joins the field messages in field-name order for one-line error output.
func (r Result) Summary() string {
	if r.Accepted() {
		return ""
	}
	return JoinErrors(r.Errors)
}

// Sanitize validates input against schema. Input keys that are not part of
// the schema are dropped. Blank optional fields, and blank date fields
// whether required or not, come back as nil.
func Sanitize(input map[string]any, schema Schema) Result {
	data := make(map[string]any, len(schema))
	errs := map[string]string{}

	for _, field := range schema {
		value, present := input[field.Name]
		empty := !present || isBlank(value)

		if empty && !field.Required() {
			data[field.Name] = nil
			continue
		}

		cleaned, ok := sanitizeField(field, value, empty)
		if !ok {
			errs[field.Name] = fieldMessage(field)
			continue
		}
		data[field.Name] = cleaned
	}

	if len(errs) > 0 {
		return Result{Errors: errs}
	}
	return Result{Data: data}
}

func sanitizeField(field Field, value any, empty bool) (any, bool) {
	switch field.Kind {
	case KindString:
		return SanitizeString(value, field.maxLength())
	case KindEmail:
		s, ok := value.(string)
		if !ok || !IsValidEmail(s) {
			return nil, false
		}
		return strings.ToLower(s), true
	case KindDate:
		if empty {
			return nil, true
		}
		s, ok := value.(string)
		if !ok || !IsValidDate(s) {
			return nil, false
		}
		return s, true
	default:
		return nil, false
	}
}

func fieldMessage(field Field) string {
	switch field.Kind {
	case KindString:
		return fmt.Sprintf("%s must be a valid string (max %d characters)", field.Name, field.maxLength())
	case KindEmail:
		return fmt.Sprintf("%s must be a valid email", field.Name)
	case KindDate:
		return fmt.Sprintf("%s must be a valid date (ISO 8601)", field.Name)
	default:
		return fmt.Sprintf("%s has an unsupported type", field.Name)
	}
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
