package validation

import (
	"fmt"
	"strings"

	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
)

// DefaultProfileNameMaxLength is used when no configured limit is supplied.
const DefaultProfileNameMaxLength = 64

// ValidStatus accepts any spelling domain.ParseStatus resolves, so
// "pending" and "in-progress" pass. Empty values pass.
func ValidStatus() Rule {
	labels := make([]string, 0, len(domain.Statuses())+1)
	for _, s := range domain.Statuses() {
		labels = append(labels, string(s))
	}
	labels = append(labels, domain.StatusInProgressLabel)
	message := fmt.Sprintf("Must be one of: %s", strings.Join(labels, ", "))

	return func(value string, _ Values) string {
		if value == "" {
			return ""
		}
		if _, ok := domain.ParseStatus(value); !ok {
			return message
		}
		return ""
	}
}

// TaskSchema returns the rule chains for the task form.
func TaskSchema() Schema {
	return Schema{
		domain.FieldDriver:  {Required},
		domain.FieldCompany: {Required},
		domain.FieldDate:    {Required, ValidCalendarDate},
		domain.FieldTime:    {Required, ValidClock},
		domain.FieldStatus:  {Required, ValidStatus()},
		domain.FieldAction:  {Required},
	}
}

// ProfileSchema returns the rule chain for the profile name form.
func ProfileSchema(maxLength int) Schema {
	if maxLength <= 0 {
		maxLength = DefaultProfileNameMaxLength
	}
	return Schema{
		"name": {Required, MaxLength(maxLength)},
	}
}

// TaskValidator validates task input before it reaches the ledger.
type TaskValidator struct {
	engine *Engine
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{engine: NewEngine(TaskSchema())}
}

// Engine exposes the underlying engine so callers can build a Form on it.
func (tv *TaskValidator) Engine() *Engine {
	return tv.engine
}

// ValidateTaskInput checks every task field and returns a *ValidationError
// listing each failing field.
func (tv *TaskValidator) ValidateTaskInput(in domain.TaskInput) error {
	return tv.engine.Check(Values(in.Values()))
}

// ProfileValidator validates profile names.
type ProfileValidator struct {
	engine *Engine
}

// NewProfileValidator creates a validator enforcing the given maximum name length.
func NewProfileValidator(maxLength int) *ProfileValidator {
	return &ProfileValidator{engine: NewEngine(ProfileSchema(maxLength))}
}

// GetValidProfileName returns the trimmed name if it is acceptable.
func (pv *ProfileValidator) GetValidProfileName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if err := pv.engine.Check(Values{"name": trimmed}); err != nil {
		return "", err
	}
	return trimmed, nil
}
