package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeUnavailable  ErrorCode = "UNAVAILABLE"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches sentinel errors by code and message so wrapped copies still compare equal.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

var (
	ErrActivityNotFound = NewError(ErrCodeNotFound, "activity not found")
	ErrPhotoNotFound    = NewError(ErrCodeNotFound, "photo not found")
	ErrInvalidLetter    = NewError(ErrCodeInvalid, "letter must be a single latin letter A-Z")
	ErrEmptyName        = NewError(ErrCodeInvalid, "activity name must not be empty")
	ErrInvalidRating    = NewError(ErrCodeInvalid, "rating must be between 1 and 5")
	ErrUnknownUser      = NewError(ErrCodeInvalid, "unknown user")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "invalid payload")
	ErrLetterTaken      = NewError(ErrCodeConflict, "letter already has an activity")
	ErrNoLettersLeft    = NewError(ErrCodeConflict, "all letters completed")
	ErrWrongPasscode    = NewError(ErrCodeUnauthorized, "wrong passcode")
	ErrUnauthorized     = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrNoCurrentUser    = NewError(ErrCodeNotFound, "no current user")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
