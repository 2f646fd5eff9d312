package sanitize

import "fmt"

// Kind selects the validator applied to a field.
type Kind int

const (
	KindString Kind = iota
	KindEmail
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindEmail:
		return "email"
	case KindDate:
		return "date"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field describes one accepted input field.
type Field struct {
	Name string
	Kind Kind
	// MaxLength bounds string fields; zero means DefaultMaxLength.
	MaxLength int
	// Optional fields may be missing, null or "". Fields are required by default.
	Optional bool
}

// Required reports whether the field must carry a value.
func (f Field) Required() bool {
	return !f.Optional
}

func (f Field) maxLength() int {
	if f.MaxLength <= 0 {
		return DefaultMaxLength
	}
	return f.MaxLength
}

// Schema is the ordered whitelist of fields for one entity.
type Schema []Field

// Names returns the field names in schema order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s))
	for _, f := range s {
		names = append(names, f.Name)
	}
	return names
}

// Lookup returns the field with the given name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Pick returns the fields of s whose names are listed, in schema order.
// Unknown names are ignored.
func (s Schema) Pick(names ...string) Schema {
	want := make(map[string]struct{}, len(names))
	for _, name := range names {
		want[name] = struct{}{}
	}
	out := make(Schema, 0, len(names))
	for _, f := range s {
		if _, ok := want[f.Name]; ok {
			out = append(out, f)
		}
	}
	return out
}
