package server

import (
	"net/http"
	"strings"

	"nundu/internal/models"
	"nundu/internal/sanitize"
)

// listQuery filters a collection by field equality and pages through it.
type listQuery struct {
	// match maps a schema field to the accepted values.
	match  map[string][]string
	limit  int
	offset int
}

// parseListQuery reads ?<field>=a,b filters for the schema's fields plus
// limit and offset. Other parameters are ignored. Filter values are escaped
// the way stored strings are, so a raw title matches its stored form.
func parseListQuery(r *http.Request, schema sanitize.Schema) (listQuery, error) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		return listQuery{}, err
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		return listQuery{}, err
	}

	query := listQuery{match: map[string][]string{}, limit: limit, offset: offset}
	params := r.URL.Query()
	for _, field := range schema {
		values := splitCSV(params.Get(field.Name))
		if len(values) == 0 {
			continue
		}
		escaped := make([]string, 0, len(values))
		for _, value := range values {
			switch field.Kind {
			case sanitize.KindString:
				value = sanitize.EscapeHTML(value)
			case sanitize.KindEmail:
				value = strings.ToLower(value)
			}
			escaped = append(escaped, value)
		}
		query.match[field.Name] = escaped
	}
	return query, nil
}

func (q listQuery) apply(records []models.Record) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if q.matches(rec) {
			out = append(out, rec)
		}
	}

	if q.offset > 0 {
		if q.offset >= len(out) {
			return []models.Record{}
		}
		out = out[q.offset:]
	}
	if q.limit > 0 && q.limit < len(out) {
		out = out[:q.limit]
	}
	return out
}

func (q listQuery) matches(rec models.Record) bool {
	for field, values := range q.match {
		got := rec.String(field)
		found := false
		for _, value := range values {
			if got == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
