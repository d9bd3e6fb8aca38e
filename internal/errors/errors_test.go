package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewDuplicateProfileError(t *testing.T) {
	err := NewDuplicateProfileError("Alice")

	if err.Type != ErrorTypeDuplicateProfile {
		t.Errorf("type = %v, want %v", err.Type, ErrorTypeDuplicateProfile)
	}
	if err.Message != `Profile "Alice" already exists` {
		t.Errorf("message = %q", err.Message)
	}
	if err.Code != "DUPLICATE_PROFILE" {
		t.Errorf("code = %v", err.Code)
	}
	if name, ok := err.GetContext("name"); !ok || name != "Alice" {
		t.Error("should set name context")
	}
}

func TestNewIndexOutOfRangeError(t *testing.T) {
	err := NewIndexOutOfRangeError("task", 5, 2)

	if err.Type != ErrorTypeIndexOutOfRange {
		t.Errorf("type = %v", err.Type)
	}
	if err.Message != "task index 5 out of range (have 2)" {
		t.Errorf("message = %q", err.Message)
	}
	if idx, _ := err.GetContext("index"); idx != 5 {
		t.Errorf("index context = %v", idx)
	}
}

func TestNewNotSignedInError(t *testing.T) {
	err := NewNotSignedInError("add tasks")
	if err.Message != "Please sign in to add tasks" {
		t.Errorf("message = %q", err.Message)
	}
	if GetErrorCode(err) != "NOT_SIGNED_IN" {
		t.Errorf("code = %v", GetErrorCode(err))
	}
}

func TestNewInvalidFormatError(t *testing.T) {
	cause := errors.New("missing tasks")
	err := NewInvalidFormatError("document must contain profiles and tasks", cause)

	if err.Type != ErrorTypeInvalidFormat {
		t.Errorf("type = %v", err.Type)
	}
	if err.Cause != cause {
		t.Errorf("cause = %v", err.Cause)
	}
}

func TestNewMirrorWriteError(t *testing.T) {
	err := NewMirrorWriteError("/tmp/tasks.json", errors.New("read-only file system"))

	if err.Type != ErrorTypeMirrorWriteFailed {
		t.Errorf("type = %v", err.Type)
	}
	want := "Failed to auto-save to /tmp/tasks.json: read-only file system"
	if got := GetUserMessage(err); got != want {
		t.Errorf("GetUserMessage() = %q, want %q", got, want)
	}
}

func TestIsErrorType(t *testing.T) {
	wrapped := fmt.Errorf("rename: %w", NewDuplicateProfileError("Bob"))

	if !IsErrorType(wrapped, ErrorTypeDuplicateProfile) {
		t.Error("IsErrorType should see through fmt wrapping")
	}
	if IsErrorType(wrapped, ErrorTypeNotFound) {
		t.Error("IsErrorType should not match another type")
	}
	if IsErrorType(errors.New("plain"), ErrorTypeValidation) {
		t.Error("plain errors have no type")
	}
}

func TestAsAppError(t *testing.T) {
	if _, ok := AsAppError(errors.New("plain")); ok {
		t.Error("AsAppError(plain) should be false")
	}
	appErr, ok := AsAppError(fmt.Errorf("ctx: %w", NewNoProfileSelectedError(3)))
	if !ok || appErr.Type != ErrorTypeNoProfileSelected {
		t.Errorf("AsAppError() = %v, %v", appErr, ok)
	}
	if !IsAppError(appErr) {
		t.Error("IsAppError should be true")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"validation", NewValidationError("driver is required", nil), "driver is required"},
		{"database", NewDatabaseError("set", errors.New("locked")), "A database error occurred. Please try again."},
		{"timeout", NewTimeoutError("set", "5s"), "The operation timed out. Please try again."},
		{"duplicate", NewDuplicateProfileError("Ann"), `Profile "Ann" already exists`},
		{"not signed in", NewNotSignedInError("delete tasks"), "Please sign in to delete tasks"},
		{"no profile", NewNoProfileSelectedError(-1), "Please select a profile to sign in"},
		{"invalid format", NewInvalidFormatError("x", nil), "Invalid data format. JSON must contain 'profiles' and 'tasks' properties."},
		{"storage corrupt", NewStorageCorruptError("profiles", nil), "Some saved data could not be read and was skipped."},
		{"unknown type", &AppError{Type: ErrorType(77), Message: "x"}, "An unexpected error occurred. Please try again."},
		{"plain", errors.New("plain failure"), "plain failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetUserMessage(tt.err); got != tt.expected {
				t.Errorf("GetUserMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"validation", NewValidationError("x", nil), false},
		{"duplicate", NewDuplicateProfileError("x"), false},
		{"index", NewIndexOutOfRangeError("task", 1, 0), false},
		{"invalid format", NewInvalidFormatError("x", nil), false},
		{"database", NewDatabaseError("x", nil), true},
		{"storage corrupt", NewStorageCorruptError("k", nil), true},
		{"mirror", NewMirrorWriteError("f", nil), true},
		{"plain", errors.New("x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldLogError(tt.err); got != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("disk")
	err := WrapError(cause, ErrorTypeDatabase, "save profiles")

	if err.Code != "database" {
		t.Errorf("code = %v", err.Code)
	}
	if !errors.Is(err, cause) {
		t.Error("WrapError should keep the cause")
	}
}
