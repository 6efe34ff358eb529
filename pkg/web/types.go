// Package web provides the HTTP handlers for the natctl command API.
package web

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// InterpretRequest carries one raw text command for interpretation only;
// nothing is validated, dispatched, or recorded.
type InterpretRequest struct {
	Text string `json:"text" validate:"required"`
}

// ValidateJSONRequest carries a raw payload, typically model output, for
// strict-then-repaired JSON validation.
type ValidateJSONRequest struct {
	Payload string `json:"payload" validate:"required"`
}

// CommandRequest submits one command through the full pipeline: interpret,
// validate, dispatch, record.
type CommandRequest struct {
	Text      string `json:"text"                 validate:"required"`
	SessionID string `json:"session_id,omitempty"`
}
