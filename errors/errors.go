package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind tags an error with its failure class so callers can branch on it
// without string-matching messages.
type Kind string

const (
	KindConfig       Kind = "config"
	KindInvalidInput Kind = "invalid_input"
	KindNotFound     Kind = "not_found"
	KindUnavailable  Kind = "unavailable"
	KindExtraction   Kind = "extraction"
	KindInternal     Kind = "internal"
)

type AppError struct {
	Kind    Kind   `json:"-"`
	Code    int    `json:"-"`
	Message string `json:"error"`
	Op      string `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Config signals a missing or invalid credential/argument before any
// network call is made.
func Config(op string, err error, message string) *AppError {
	return &AppError{
		Kind:    KindConfig,
		Code:    http.StatusInternalServerError,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func InvalidInput(op string, err error, message string) *AppError {
	return &AppError{
		Kind:    KindInvalidInput,
		Code:    http.StatusBadRequest,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func NotFound(op string, err error, message string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Code:    http.StatusNotFound,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// Unavailable signals that a transcript could not be fetched after the
// retry budget was exhausted. Recovered per video, never per batch.
func Unavailable(op string, err error, message string) *AppError {
	return &AppError{
		Kind:    KindUnavailable,
		Code:    http.StatusBadGateway,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// Extraction signals a failed or malformed generative-model response.
func Extraction(op string, err error, message string) *AppError {
	return &AppError{
		Kind:    KindExtraction,
		Code:    http.StatusBadGateway,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func Internal(op string, err error, message string) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Code:    http.StatusInternalServerError,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// IsKind reports whether err (or anything it wraps) is an AppError of the
// given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}
