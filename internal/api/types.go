package api

// ErrorResponse is a generic JSON error wrapper.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Code      string            `json:"code,omitempty"`
	ErrorCode int               `json:"error_code,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// InfoResponse describes the running server and its data.
type InfoResponse struct {
	Storage  string         `json:"storage"`
	Location string         `json:"location"`
	Counts   map[string]int `json:"counts"`
	Total    int            `json:"total"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
