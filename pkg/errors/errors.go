package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Splitter configuration errors
	ErrPairMismatch  ErrorCode = "SPLIT_PAIR_MISMATCH"
	ErrPairsEmpty    ErrorCode = "SPLIT_PAIRS_EMPTY"
	ErrPairDuplicate ErrorCode = "SPLIT_PAIR_DUPLICATE"
	ErrTokenEmpty    ErrorCode = "SPLIT_TOKEN_EMPTY"
	ErrDelimEmpty    ErrorCode = "SPLIT_DELIM_EMPTY"

	// Output errors
	ErrOutputWrite  ErrorCode = "OUTPUT_WRITE"
	ErrOutputFormat ErrorCode = "OUTPUT_FORMAT"

	// Help topic errors
	ErrTopicNotFound ErrorCode = "TOPIC_NOT_FOUND"
)

// ConvoyError represents a structured error with code and details
type ConvoyError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ConvoyError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ConvoyError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a ConvoyError carrying the same code
func (e *ConvoyError) Is(target error) bool {
	var targetErr *ConvoyError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ConvoyError with the given code and message
func New(code ErrorCode, message string) *ConvoyError {
	return &ConvoyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ConvoyError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ConvoyError {
	return &ConvoyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ConvoyError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *ConvoyError {
	if err == nil {
		return nil
	}
	return &ConvoyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ConvoyError {
	if err == nil {
		return nil
	}
	return &ConvoyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ConvoyError) WithDetail(key string, value interface{}) *ConvoyError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var convoyErr *ConvoyError
	if errors.As(err, &convoyErr) {
		return convoyErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ConvoyError
func GetErrorCode(err error) ErrorCode {
	var convoyErr *ConvoyError
	if errors.As(err, &convoyErr) {
		return convoyErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ConvoyError
func GetErrorDetails(err error) map[string]interface{} {
	var convoyErr *ConvoyError
	if errors.As(err, &convoyErr) {
		return convoyErr.Details
	}
	return nil
}
