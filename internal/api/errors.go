package api

import "fmt"

// APIError is a structured non-2xx response from the remote service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Retryable reports whether the failure is worth retrying: server-side
// errors may be transient, client errors never are.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500
}
