package validation

import (
	"strings"
	"testing"

	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTaskInput() domain.TaskInput {
	return domain.TaskInput{
		Driver:  "Ann Lee",
		Company: "Acme Freight",
		Date:    "2024-03-05",
		Time:    "08:30",
		Status:  "Pending",
		Action:  "Pickup at dock 4",
	}
}

func TestTaskValidator_ValidateTaskInput(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*domain.TaskInput)
		expected Errors
	}{
		{"valid input", func(*domain.TaskInput) {}, nil},
		{"legacy in progress label accepted", func(in *domain.TaskInput) { in.Status = "In Progress" }, nil},
		{"canonical in progress accepted", func(in *domain.TaskInput) { in.Status = "InProgress" }, nil},
		{"status in any case", func(in *domain.TaskInput) { in.Status = "pending" }, nil},
		{"dashed status", func(in *domain.TaskInput) { in.Status = "in-progress" }, nil},
		{"padded values are trimmed first", func(in *domain.TaskInput) {
			in.Date = " 2024-01-15"
			in.Time = "08:30 "
			in.Status = " Completed "
		}, nil},
		{"missing driver", func(in *domain.TaskInput) { in.Driver = " " }, Errors{"driver": MessageRequired}},
		{"bad date", func(in *domain.TaskInput) { in.Date = "03/05/2024" }, Errors{"date": MessageInvalidDate}},
		{"bad time", func(in *domain.TaskInput) { in.Time = "8am" }, Errors{"time": MessageInvalidTime}},
		{"unknown status", func(in *domain.TaskInput) { in.Status = "Done" }, Errors{"status": "Must be one of: Pending, InProgress, Completed, In Progress"}},
		{"everything empty", func(in *domain.TaskInput) { *in = domain.TaskInput{} }, Errors{
			"driver": MessageRequired, "company": MessageRequired, "date": MessageRequired,
			"time": MessageRequired, "status": MessageRequired, "action": MessageRequired,
		}},
	}

	validator := NewTaskValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validTaskInput()
			tt.mutate(&in)

			err := validator.ValidateTaskInput(in)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ve, ok := err.(*ValidationError)
			require.True(t, ok)
			assert.Equal(t, tt.expected, ve.FieldMessages())
		})
	}
}

func TestProfileValidator_GetValidProfileName(t *testing.T) {
	validator := NewProfileValidator(8)

	name, err := validator.GetValidProfileName("  Ann  ")
	require.NoError(t, err)
	assert.Equal(t, "Ann", name)

	_, err = validator.GetValidProfileName("   ")
	assert.True(t, IsValidationError(err))

	_, err = validator.GetValidProfileName(strings.Repeat("x", 9))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Must be at most 8 characters")
}

func TestProfileSchema_DefaultLimit(t *testing.T) {
	engine := NewEngine(ProfileSchema(0))
	assert.Equal(t, "", engine.Validate("name", strings.Repeat("x", DefaultProfileNameMaxLength), nil))
	assert.NotEqual(t, "", engine.Validate("name", strings.Repeat("x", DefaultProfileNameMaxLength+1), nil))
}
