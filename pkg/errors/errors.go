package errors

import (
	"errors"
	"fmt"
)

// Pipeline failure taxonomy.
var (
	// ErrAuthentication is fatal to a session but never to a batch.
	ErrAuthentication = errors.New("authentication failed")
	// ErrProfileNotFound means the identifier resolved to no content.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrParse means expected structural markers were absent.
	ErrParse = errors.New("parse error")
	// ErrTransport covers navigation failures and timeouts.
	ErrTransport = errors.New("transport failure")
	// ErrValidation means a completion response broke the event schema.
	ErrValidation = errors.New("validation failure")
	// ErrRepository is a persistence failure.
	ErrRepository = errors.New("repository error")
)

// Error codes attached through WrapWithCode.
const (
	CodeAuthentication  = "AUTHENTICATION"
	CodeProfileNotFound = "PROFILE_NOT_FOUND"
	CodeParse           = "PARSE"
	CodeTransport       = "TRANSPORT"
	CodeValidation      = "VALIDATION"
	CodeRepository      = "REPOSITORY"
)

// Error represents a custom error type
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new error with a message
func New(message string) error {
	return &Error{
		Message: message,
	}
}

// Wrap wraps an error with additional message
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

// WrapWithCode wraps an error with a code and message
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Authentication wraps cause so that it matches ErrAuthentication.
func Authentication(message string, cause error) error {
	return WrapWithCode(join(ErrAuthentication, cause), CodeAuthentication, message)
}

// ProfileNotFound builds an error matching ErrProfileNotFound.
func ProfileNotFound(id string) error {
	return WrapWithCode(ErrProfileNotFound, CodeProfileNotFound, fmt.Sprintf("profile %q", id))
}

// Parse wraps cause so that it matches ErrParse.
func Parse(message string, cause error) error {
	return WrapWithCode(join(ErrParse, cause), CodeParse, message)
}

// Transport wraps cause so that it matches ErrTransport.
func Transport(message string, cause error) error {
	return WrapWithCode(join(ErrTransport, cause), CodeTransport, message)
}

// Validation wraps cause so that it matches ErrValidation.
func Validation(message string, cause error) error {
	return WrapWithCode(join(ErrValidation, cause), CodeValidation, message)
}

// Repository wraps cause so that it matches ErrRepository.
func Repository(message string, cause error) error {
	return WrapWithCode(join(ErrRepository, cause), CodeRepository, message)
}

func join(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return errors.Join(sentinel, cause)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetMessage returns the error message
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsAuthentication returns true if the error is fatal to a session
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsRecoverable reports whether an acquisition error may be retried on another attempt.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrParse) || errors.Is(err, ErrProfileNotFound) || errors.Is(err, ErrTransport)
}
