package storefront

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrDecode marks a 2xx response whose body could not be decoded as JSON.
// It is deliberately distinct from *APIError: the server accepted the call,
// the payload was the problem.
var ErrDecode = errors.New("storefront: invalid response body")

// genericFailure is the error message used when a failed response carries
// no detail field and no body text.
const genericFailure = "request failed"

// APIError represents a non-2xx API response.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Message is a human-readable error message: the server's `detail`
	// field when present, else the raw response text.
	Message string
	// RequestID is the client-generated X-Request-ID of the failed call.
	RequestID string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("storefront: %s (HTTP %d)", e.Message, e.StatusCode)
}

// IsNotFound returns true if the error is a not found error.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized returns true if the error is an authentication error.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden returns true if the error is a permission error.
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsValidationError returns true if the server rejected the request payload.
func (e *APIError) IsValidationError() bool {
	return e.StatusCode == http.StatusBadRequest
}

// parseError normalizes a non-2xx response body into an *APIError.
//
// Message precedence: the JSON body's `detail` field, else the raw body
// text, else a generic fallback.
func parseError(statusCode int, body []byte, requestID string) error {
	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    genericFailure,
		RequestID:  requestID,
	}

	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		apiErr.Message = detail.Detail
		return apiErr
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		apiErr.Message = text
	}
	return apiErr
}

// IsAPIError checks if an error is an API error and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
