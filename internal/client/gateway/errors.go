package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrInvalidUserID = errors.New("invalid user id")
)

// GenericFailure is shown for transport failures.
const GenericFailure = "Something went wrong. Please try again."

// APIError is a non-success response from the API.
type APIError struct {
	Status  int
	Message string
	// Fallback is set when the body carried no usable message and Message
	// is the endpoint's fixed text.
	Fallback bool
	// Err is the decode error, if any.
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

func newAPIError(status int, body []byte, fallback string) *APIError {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return &APIError{Status: status, Message: envelope.Message}
	}
	return &APIError{Status: status, Message: fallback, Fallback: true}
}

// UserMessage returns the user-facing text for err, without the failure
// marker.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnavailable) {
		return GenericFailure
	}
	return err.Error()
}
