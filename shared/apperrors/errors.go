// Package apperrors defines the error kinds shared by every service.
// Stores and managers wrap these sentinels; handlers map them to status codes
// with errors.Is / errors.As.
package apperrors

import (
	"errors"
	"strings"
)

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrNotFound          = errors.New("not found")
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ValidationError carries the field details of a rejected command.
// It matches ErrInvalidArgument.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrInvalidArgument.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}
