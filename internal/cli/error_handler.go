package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
	"github.com/Burh0n/LogiTrack-Pro/internal/logging"
	"github.com/Burh0n/LogiTrack-Pro/internal/validation"
)

// crashMessage is what a user sees when a command panics.
const crashMessage = "Something went wrong. Please try again."

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %s", operation, eh.message(err))
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s", eh.message(err))
}

func (eh *ErrorHandler) message(err error) string {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return validationErr.GetUserFriendlyMessage()
	}
	if _, ok := errors.AsAppError(err); ok {
		if errors.ShouldLogError(err) {
			logging.L().Error("command failed", "code", errors.GetErrorCode(err), "err", err)
		}
		return errors.GetUserMessage(err)
	}
	return err.Error()
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDatabase)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// PanicError is what Recover reports in place of a panic.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return crashMessage
}

// Recover turns a panic in the calling function into *errp. Use it as
// `defer Recover(&err)`.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	logging.L().Error("command panicked", "panic", r, "stack", string(debug.Stack()))
	*errp = &PanicError{Value: r}
}
