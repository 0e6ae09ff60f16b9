package api

import "fmt"

// APIError is returned when the server answers with a non-2xx status.
type APIError struct {
	// Status is the HTTP status code.
	Status int
	// Message is the raw response body.
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}
