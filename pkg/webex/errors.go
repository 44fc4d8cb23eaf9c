package webex

import (
	"fmt"
	"net/http"
)

// AuthError is returned when the API rejects the bearer token (401 or 403).
type AuthError struct {
	StatusCode int
	StatusText string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%d: %s (check your token)", e.StatusCode, e.StatusText)
}

// APIError is returned for any other non-2xx response.
type APIError struct {
	StatusCode int
	StatusText string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.StatusText)
}

// statusError classifies a non-2xx response.
func statusError(code int, text string, body []byte) error {
	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		return &AuthError{StatusCode: code, StatusText: text}
	}
	return &APIError{StatusCode: code, StatusText: text, Body: string(body)}
}
