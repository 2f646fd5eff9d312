// Package sanitize validates and cleans untrusted record input.
//
// A Schema lists the fields an entity accepts, each with a Kind (string,
// email or date) and its constraints. Sanitize applies a schema to a decoded
// JSON object and returns either the cleaned values or one message per
// rejected field, never both:
//
//	res := sanitize.Sanitize(body, sanitize.TaskSchema())
//	if !res.Accepted() {
//		// res.Errors: {"title": "title must be a valid string (max 200 characters)"}
//	}
//
// String values are trimmed and HTML-escaped exactly once, here, at the point
// the text enters the system. Email values are lower-cased. Date values are
// kept verbatim once they parse.
//
// Every function in the package is pure and safe for concurrent use.
package sanitize
