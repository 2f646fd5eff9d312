package api

import (
	"fmt"

	"nundu/internal/sanitize"
)

// APIError is a structured error returned by the HTTP API.
type APIError struct {
	Status    int
	Code      string
	ErrorCode int
	Message   string
	// Details holds per-field validation messages.
	Details map[string]string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	message := e.Message
	if len(e.Details) > 0 {
		message = fmt.Sprintf("%s (%s)", message, sanitize.JoinErrors(e.Details))
	}
	if e.Code != "" && message != "" {
		return fmt.Sprintf("%s: %s", e.Code, message)
	}
	if message != "" {
		return message
	}
	if e.Status > 0 {
		return fmt.Sprintf("api error: %d", e.Status)
	}
	return "api error"
}
