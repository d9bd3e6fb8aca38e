package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a dispatch task.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"

	// StatusInProgressLabel is the spelling the dashboard form submitted.
	StatusInProgressLabel = "In Progress"
)

// Field names shared by the task form, its validator and stored records.
const (
	FieldDriver  = "driver"
	FieldCompany = "company"
	FieldDate    = "date"
	FieldTime    = "time"
	FieldStatus  = "status"
	FieldAction  = "action"
)

// Statuses returns every valid status in display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

// ParseStatus maps user input onto a Status. Matching ignores case, spaces
// and dashes so "in progress" and "in-progress" resolve to InProgress.
func ParseStatus(s string) (Status, bool) {
	key := strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s))
	for _, status := range Statuses() {
		if strings.ToLower(string(status)) == key {
			return status, true
		}
	}
	return "", false
}

// Task is one dispatch assignment owned by a single profile.
type Task struct {
	ID      string `json:"id,omitempty"`
	Driver  string `json:"driver"`
	Company string `json:"company"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Status  Status `json:"status"`
	Action  string `json:"action"`
}

// TaskInput is the raw form input for creating or editing a task.
type TaskInput struct {
	Driver  string
	Company string
	Date    string
	Time    string
	Status  string
	Action  string
}

// Values exposes the input as a field map for the validation engine.
func (in TaskInput) Values() map[string]string {
	return map[string]string{
		FieldDriver:  in.Driver,
		FieldCompany: in.Company,
		FieldDate:    in.Date,
		FieldTime:    in.Time,
		FieldStatus:  in.Status,
		FieldAction:  in.Action,
	}
}

// TaskInputFromValues is the inverse of Values.
func TaskInputFromValues(values map[string]string) TaskInput {
	return TaskInput{
		Driver:  values[FieldDriver],
		Company: values[FieldCompany],
		Date:    values[FieldDate],
		Time:    values[FieldTime],
		Status:  values[FieldStatus],
		Action:  values[FieldAction],
	}
}

// NewTask assembles a task from validated input and gives it a fresh ID.
func NewTask(in TaskInput) Task {
	t := in.apply(Task{})
	t.ID = NewTaskID()
	return t
}

// WithInput returns a copy of t with every field replaced by in, keeping ID.
func (t Task) WithInput(in TaskInput) Task {
	return in.apply(t)
}

// Input returns the task's editable fields as form input.
func (t Task) Input() TaskInput {
	return TaskInput{
		Driver:  t.Driver,
		Company: t.Company,
		Date:    t.Date,
		Time:    t.Time,
		Status:  string(t.Status),
		Action:  t.Action,
	}
}

// ScheduledAt renders the combined YYYY-MM-DDTHH:MM value.
func (t Task) ScheduledAt() string {
	return t.Date + "T" + t.Time
}

// OnDay reports whether the task is scheduled on the given YYYY-MM-DD day.
func (t Task) OnDay(day string) bool {
	return day != "" && t.Date == day
}

// InPeriod reports whether the task date starts with prefix (YYYY-MM or YYYY).
func (t Task) InPeriod(prefix string) bool {
	return prefix != "" && strings.HasPrefix(t.Date, prefix)
}

func (in TaskInput) apply(t Task) Task {
	status, ok := ParseStatus(in.Status)
	if !ok {
		status = Status(strings.TrimSpace(in.Status))
	}
	t.Driver = strings.TrimSpace(in.Driver)
	t.Company = strings.TrimSpace(in.Company)
	t.Date = strings.TrimSpace(in.Date)
	t.Time = strings.TrimSpace(in.Time)
	t.Status = status
	t.Action = strings.TrimSpace(in.Action)
	return t
}

// NewTaskID generates a stable task identifier.
func NewTaskID() string {
	return uuid.New().String()
}

// SplitScheduledAt splits "YYYY-MM-DDTHH:MM" into its date and time parts.
func SplitScheduledAt(value string) (date, clock string) {
	date, clock, _ = strings.Cut(value, "T")
	if len(clock) > 5 {
		clock = clock[:5]
	}
	return date, clock
}
