package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrNetwork      ErrorCode = "NETWORK_ERROR"
	ErrServer       ErrorCode = "SERVER_ERROR"

	// Scheduling specific errors
	ErrCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"
	ErrTopicMismatch    ErrorCode = "TOPIC_MISMATCH"
	ErrBucketNotFound   ErrorCode = "BUCKET_NOT_FOUND"
	ErrQuestionNotFound ErrorCode = "QUESTION_NOT_FOUND"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(ErrUnauthorized, message, nil)
}

func NewNetworkError(err error) *DomainError {
	return NewError(ErrNetwork, "request failed", err)
}

func NewServerError(message string) *DomainError {
	if message == "" {
		message = "the server reported an error"
	}
	return NewError(ErrServer, message, nil)
}

func NewCapacityExceededError(max int) *DomainError {
	return NewError(ErrCapacityExceeded, fmt.Sprintf("bucket already holds its maximum of %d questions", max), nil)
}

func NewTopicMismatchError(want, got Topic) *DomainError {
	return NewError(ErrTopicMismatch, fmt.Sprintf("question topic %q does not match bucket topic %q", got, want), nil)
}

func NewBucketNotFoundError(id string) *DomainError {
	return NewError(ErrBucketNotFound, fmt.Sprintf("bucket not found: %s", id), nil)
}

func NewQuestionNotFoundError(id string) *DomainError {
	return NewError(ErrQuestionNotFound, fmt.Sprintf("question not found: %s", id), nil)
}

// FieldError describes a single invalid request field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors aggregates per-field validation failures. Validation is
// rejected before any network call is made.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewMissingFieldError(field string) FieldError {
	return FieldError{Field: field, Reason: "is required"}
}

func NewInvalidValueError(field, reason string) FieldError {
	return FieldError{Field: field, Reason: reason}
}

func NewOutOfRangeError(field string, value, min, max int) FieldError {
	return FieldError{Field: field, Reason: fmt.Sprintf("value %d is out of range [%d, %d]", value, min, max)}
}

// ValidationError represents a single-message validation error used by
// entity Validate methods.
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

func NewValidationError(message string) error {
	return &ValidationError{message: message}
}
