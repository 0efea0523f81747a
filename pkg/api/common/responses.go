package common

// ErrorResponse represents a standard error response from the platform API.
// The message is opaque display text; clients never pattern-match it.
type ErrorResponse struct {
	Message string `json:"message"`
}

// SuccessResponse represents the standard success envelope from the platform
// API. Response types embed it alongside their typed payload. A 200 whose
// Success flag is false is still a declined operation; Message carries the
// display text for that case.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
