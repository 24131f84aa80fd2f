package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrForbidden    ErrorCode = "FORBIDDEN"

	// Store specific errors
	ErrDuplicateNickname ErrorCode = "DUPLICATE_NICKNAME"
	ErrCorruptData       ErrorCode = "CORRUPT_DATA"
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

func NewForbiddenError(message string) *DomainError {
	return NewError(ErrForbidden, message, nil)
}

func NewDuplicateNicknameError(nickname string) *DomainError {
	return NewError(ErrDuplicateNickname, fmt.Sprintf("nickname already taken: %s", nickname), nil)
}

func NewCorruptDataError(path string, err error) *DomainError {
	return NewError(ErrCorruptData, fmt.Sprintf("cannot parse %s", path), err)
}

func NewSelectionNotFoundError(section, theme string) *DomainError {
	if theme == "" {
		return NewNotFoundError(fmt.Sprintf("selection not found: section %q", section))
	}
	return NewNotFoundError(fmt.Sprintf("selection not found: section %q, theme %q", section, theme))
}

// CodeOf returns the code of the first DomainError in err's chain, or
// ErrInternal when there is none.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ErrInternal
}

func IsNotFound(err error) bool {
	return err != nil && CodeOf(err) == ErrNotFound
}

func IsDuplicateNickname(err error) bool {
	return err != nil && CodeOf(err) == ErrDuplicateNickname
}

func IsCorruptData(err error) bool {
	return err != nil && CodeOf(err) == ErrCorruptData
}

// Reporter receives user-facing problems from the terminal layer. The core
// never prints; it returns errors and the caller decides how to report them.
type Reporter func(kind ErrorCode, message string)
