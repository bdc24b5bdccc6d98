package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every "referenced entity is missing" error.
var ErrNotFound = errors.New("not found")

var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrChatNotFound       = fmt.Errorf("chat %w", ErrNotFound)
	ErrUserOrChatNotFound = fmt.Errorf("user or chat %w", ErrNotFound)
)

// ValidationError reports missing or malformed request input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
