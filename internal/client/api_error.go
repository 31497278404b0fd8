package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorKind string

const (
	// ErrorKindTransport - the request never completed (network, timeout)
	ErrorKindTransport ErrorKind = "transport"
	// ErrorKindUnauthorized - invalid or expired credential
	ErrorKindUnauthorized ErrorKind = "unauthorized"
	// ErrorKindValidation - the backend rejected the input
	ErrorKindValidation ErrorKind = "validation"
	// ErrorKindInternal - the backend failed
	ErrorKindInternal ErrorKind = "internal"
)

// APIError is the single error shape all backend calls return. The
// message is normalized at the call boundary, callers never have to
// dig through response bodies themselves.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Path       string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s [%d] %s: %s", e.Kind, e.StatusCode, e.Path, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Kind, e.Path, e.Message)
}

func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Kind == ErrorKindUnauthorized
}

func IsValidation(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Kind == ErrorKindValidation
}

func transportError(path string, err error) *APIError {
	return &APIError{
		Kind:    ErrorKindTransport,
		Message: err.Error(),
		Path:    path,
	}
}

// apiErrorFromResponse maps a non-2xx response to an APIError with a
// normalized message. The backend replies with either a plain text
// message or a json object carrying a message/error field.
func apiErrorFromResponse(path string, statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    normalizeErrorMessage(body),
		Path:       path,
	}

	switch {
	case statusCode == http.StatusUnauthorized:
		apiErr.Kind = ErrorKindUnauthorized
	case statusCode >= 400 && statusCode < 500:
		apiErr.Kind = ErrorKindValidation
	default:
		apiErr.Kind = ErrorKindInternal
	}

	return apiErr
}

func normalizeErrorMessage(body []byte) string {
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return "request failed"
	}

	var shape struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &shape); err == nil {
		if shape.Message != "" {
			return shape.Message
		}
		if shape.Error != "" {
			return shape.Error
		}
	}

	return raw
}
