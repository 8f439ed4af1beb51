package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Failure taxonomy for the extraction pipeline. Read failures abort a cascade
// run; model-call and map failures only fail the level they occurred in.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrReadFailure  = errors.New("tabular read failure")
	ErrModelCall    = errors.New("model call failure")
	ErrMapInvalid   = errors.New("column map validation failure")
	ErrExhausted    = errors.New("all cascade levels exhausted")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
