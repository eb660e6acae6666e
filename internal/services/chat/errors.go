// File: internal/services/chat/errors.go
package chat

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeForbidden  ErrorType = "FORBIDDEN"
	// ErrTypeConflict never leaves the registry; duplicate rooms are re-read.
	ErrTypeConflict ErrorType = "CONFLICT"
	ErrTypeStorage  ErrorType = "STORAGE"
)

type ChatError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("chat %s error in %s: %s (caused by: %v)", e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("chat %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error { return e.Cause }

func NewValidationError(operation, msg string) *ChatError {
	return &ChatError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewNotFoundError(operation, msg string) *ChatError {
	return &ChatError{Type: ErrTypeNotFound, Operation: operation, Message: msg}
}

func NewForbiddenError(operation, msg string) *ChatError {
	return &ChatError{Type: ErrTypeForbidden, Operation: operation, Message: msg}
}

func NewConflictError(operation, msg string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeConflict, Operation: operation, Message: msg, Cause: cause}
}

func NewStorageError(operation string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeStorage, Operation: operation, Message: "storage failure", Cause: cause}
}

// TypeOf returns the ErrorType of err, or "" when err is not a ChatError.
func TypeOf(err error) ErrorType {
	var chatErr *ChatError
	if errors.As(err, &chatErr) {
		return chatErr.Type
	}
	return ""
}

func IsValidation(err error) bool { return TypeOf(err) == ErrTypeValidation }
func IsNotFound(err error) bool   { return TypeOf(err) == ErrTypeNotFound }
func IsForbidden(err error) bool  { return TypeOf(err) == ErrTypeForbidden }
func IsConflict(err error) bool   { return TypeOf(err) == ErrTypeConflict }
