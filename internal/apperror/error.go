// Package apperror provides structured application errors with stable codes.
package apperror

import (
	"errors"
	"fmt"
	"runtime"
	"time"
)

// AppError implements the error interface and provides structured error handling
type AppError struct {
	Code      Code      `json:"code"`
	Message   string    `json:"message"`
	Context   string    `json:"context,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	cause     error     // unexported to maintain encapsulation
	stack     []uintptr // stack trace
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s (context: %s)", e.Code, e.Message, e.Context)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is implements errors.Is interface for error comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithContext attaches a free-form context string to the error.
func (e *AppError) WithContext(context string) *AppError {
	e.Context = context
	return e
}

// New creates an AppError with the canonical message for the code.
func New(code Code) *AppError {
	return &AppError{
		Code:      code,
		Message:   MessageFor(code),
		Timestamp: time.Now(),
		stack:     captureStack(),
	}
}

// Newf creates an AppError with a custom formatted message.
func Newf(code Code, format string, args ...any) *AppError {
	return &AppError{
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now(),
		stack:     captureStack(),
	}
}

// Wrap creates an AppError wrapping an underlying cause.
func Wrap(code Code, cause error) *AppError {
	e := New(code)
	e.cause = cause
	return e
}

// IsCode reports whether err is (or wraps) an AppError with the given code.
func IsCode(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func captureStack() []uintptr {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)
	return pcs[:n]
}
