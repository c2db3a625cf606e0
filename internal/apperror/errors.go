package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingAPIKey       = errors.New("missing API key")
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrModelNotLoaded      = errors.New("model not loaded")
	ErrEmptyCompletion     = errors.New("no text in provider response")
)

// ValidationError is a client-side failure detected before any provider call
type ValidationError struct {
	Status  int
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError returns a 400 ValidationError
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf(format, args...),
	}
}

// ExternalServiceError wraps any failure returned by a model provider
type ExternalServiceError struct {
	Provider string
	Err      error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// External wraps err as an ExternalServiceError. A nil err stays nil.
func External(provider string, err error) error {
	if err == nil {
		return nil
	}
	var ext *ExternalServiceError
	if errors.As(err, &ext) {
		return err
	}
	return &ExternalServiceError{Provider: provider, Err: err}
}

// StatusCode maps an error to the HTTP status the handler should answer with.
// Only validation errors carry their own status; everything else is a 500.
func StatusCode(err error) int {
	var v *ValidationError
	if errors.As(err, &v) && v.Status != 0 {
		return v.Status
	}
	return http.StatusInternalServerError
}
