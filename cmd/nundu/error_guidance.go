package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"

	"nundu/internal/api"
	"nundu/internal/sanitize"
)

// fieldErrors reports input rejected by the local sanitizer before any
// request was sent.
type fieldErrors struct {
	label string
	sanitize.Result
}

func (e *fieldErrors) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.label, e.Summary())
}

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	var fieldErr *fieldErrors
	if errors.As(err, &fieldErr) {
		lines := []string{fmt.Sprintf("invalid %s:", fieldErr.label)}
		return append(lines, detailLines(fieldErr.Errors)...)
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		lines := []string{err.Error()}
		if len(apiErr.Details) > 0 {
			lines = append([]string{fmt.Sprintf("%s: %s", apiErr.Code, apiErr.Message)}, detailLines(apiErr.Details)...)
		}
		switch apiErr.Code {
		case "forbidden":
			lines = append(lines, "hint: the server rejected this origin; check cors_origins.")
		case "not_found":
			lines = append(lines, "hint: list ids with: nundu <task|developer|sprint> list")
		}
		if apiErr.Code == "" {
			lines = append(lines, "hint: verify NUNDU_API_URL points to a nundu server.")
		}
		if apiErr.Status >= 500 {
			lines = append(lines, "hint: server returned an internal error; check server logs for details.")
		}
		return uniqueLines(lines)
	}

	lines := []string{err.Error()}
	if errors.Is(err, context.DeadlineExceeded) {
		lines = append(lines, "hint: request timed out; check server health or increase NUNDU_HTTP_TIMEOUT.")
		return uniqueLines(lines)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		lines = append(lines,
			"hint: ensure a nundu server is running at NUNDU_API_URL.",
			"hint: start local server manually with: nundu srv",
			"hint: you can increase NUNDU_HTTP_TIMEOUT for slower environments.",
		)
		return uniqueLines(lines)
	}

	return uniqueLines(lines)
}

func detailLines(details map[string]string) []string {
	fields := make([]string, 0, len(details))
	for field := range details {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		lines = append(lines, "  - "+details[field])
	}
	return lines
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
