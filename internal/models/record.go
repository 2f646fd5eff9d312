package models

import (
	"encoding/json"
	"time"
)

// TimestampLayout formats createdAt/updatedAt as UTC ISO-8601 with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Record is one stored entity as a JSON object.
type Record map[string]any

// ID returns the record identifier or "".
func (r Record) ID() string {
	return r.String("id")
}

// String returns the string value at key, or "" when missing or not a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge overwrites r with every key in fields.
func (r Record) Merge(fields map[string]any) {
	for k, v := range fields {
		r[k] = v
	}
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Decode converts a record into a typed view such as Task.
func Decode[T any](r Record) (T, error) {
	var out T
	payload, err := json.Marshal(r)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(payload, &out)
	return out, err
}
