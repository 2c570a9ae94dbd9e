package domain

import "fmt"

// APIError is a well-formed error response from the server: an HTTP
// failure status with a human-readable detail message. Detail may be
// empty when the server returned no usable body; callers fall back to a
// per-action generic message in that case.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Detail)
}
