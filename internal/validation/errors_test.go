package validation

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name        string
		errors      []FieldError
		expectError string
	}{
		{"No errors", []FieldError{}, "validation error"},
		{"Single error", []FieldError{{Field: "name", Message: "is required"}}, "validation error for field 'name': is required"},
		{"Multiple errors", []FieldError{
			{Field: "driver", Message: MessageRequired},
			{Field: "date", Message: MessageInvalidDate},
		}, "multiple validation errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			result := ve.Error()

			if tt.name == "Multiple errors" {
				if !strings.Contains(result, tt.expectError) {
					t.Errorf("ValidationError.Error() = %v, expected to contain %v", result, tt.expectError)
				}
			} else if result != tt.expectError {
				t.Errorf("ValidationError.Error() = %v, expected %v", result, tt.expectError)
			}
		})
	}
}

func TestValidationError_HasErrors(t *testing.T) {
	tests := []struct {
		name     string
		errors   []FieldError
		expected bool
	}{
		{"No errors", []FieldError{}, false},
		{"Has errors", []FieldError{{Field: "name", Message: "is required"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			if result := ve.HasErrors(); result != tt.expected {
				t.Errorf("ValidationError.HasErrors() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestValidationError_AddRequiredError(t *testing.T) {
	ve := NewValidationError()

	ve.AddRequiredError("driver")

	if len(ve.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(ve.Errors))
	}
	if ve.Errors[0].Type != ErrorTypeRequired {
		t.Errorf("Expected error type %v, got %v", ErrorTypeRequired, ve.Errors[0].Type)
	}
	if ve.Errors[0].Message != MessageRequired {
		t.Errorf("Expected message %q, got %q", MessageRequired, ve.Errors[0].Message)
	}
}

func TestFromFieldMessages(t *testing.T) {
	messages := Errors{
		"time":   MessageInvalidTime,
		"driver": MessageRequired,
		"name":   "Must be at least 3 characters",
		"status": "Must be one of: Pending, Completed",
	}
	ve := FromFieldMessages(messages, Values{"time": "25:00"})

	if len(ve.Errors) != 4 {
		t.Fatalf("Expected 4 errors, got %d", len(ve.Errors))
	}

	wantOrder := []string{"driver", "name", "status", "time"}
	wantTypes := []ValidationErrorType{ErrorTypeRequired, ErrorTypeInvalidLength, ErrorTypeInvalidValue, ErrorTypeInvalidFormat}
	for i, fe := range ve.Errors {
		if fe.Field != wantOrder[i] {
			t.Errorf("error %d field = %s, expected %s", i, fe.Field, wantOrder[i])
		}
		if fe.Type != wantTypes[i] {
			t.Errorf("error %d type = %s, expected %s", i, fe.Type, wantTypes[i])
		}
	}
	if ve.Errors[3].Value != "25:00" {
		t.Errorf("Expected value to be carried, got %v", ve.Errors[3].Value)
	}
}

func TestValidationError_GetFieldErrors(t *testing.T) {
	ve := NewValidationError()

	ve.AddRequiredError("name")
	ve.AddError("name", ErrorTypeInvalidLength, "Must be at most 64 characters", "x")
	ve.AddRequiredError("date")

	if got := len(ve.GetFieldErrors("name")); got != 2 {
		t.Errorf("Expected 2 errors for 'name', got %d", got)
	}
	if got := len(ve.GetFieldErrors("date")); got != 1 {
		t.Errorf("Expected 1 error for 'date', got %d", got)
	}
	if got := len(ve.GetFieldErrors("missing")); got != 0 {
		t.Errorf("Expected 0 errors for 'missing', got %d", got)
	}

	messages := ve.FieldMessages()
	if messages["name"] != MessageRequired {
		t.Errorf("FieldMessages kept %q for name, expected first message", messages["name"])
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	tests := []struct {
		name     string
		errors   []FieldError
		expected string
	}{
		{"No errors", []FieldError{}, "Input validation failed"},
		{"Single error", []FieldError{{Field: "name", Message: "is required"}}, "name: is required"},
		{"Multiple errors", []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "date", Message: "Invalid date format"},
		}, "Multiple validation errors occurred:\n- name: is required\n- date: Invalid date format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			if result := ve.GetUserFriendlyMessage(); result != tt.expected {
				t.Errorf("GetUserFriendlyMessage() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("name")

	if !IsValidationError(ve) {
		t.Errorf("IsValidationError() = false, expected true for ValidationError")
	}

	regularError := &FieldError{Field: "test", Message: "error"}
	if IsValidationError(regularError) {
		t.Errorf("IsValidationError() = true, expected false for regular error")
	}
}

func TestNewValidationError(t *testing.T) {
	ve := NewValidationError()

	if ve == nil {
		t.Fatal("NewValidationError() returned nil")
	}
	if ve.Errors == nil {
		t.Error("NewValidationError() returned ValidationError with nil Errors slice")
	}
	if len(ve.Errors) != 0 {
		t.Errorf("NewValidationError() returned ValidationError with %d errors, expected 0", len(ve.Errors))
	}
}
