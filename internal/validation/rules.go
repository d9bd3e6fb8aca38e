package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Values holds raw form input keyed by field name.
type Values map[string]string

// Errors holds the first failing rule message per field.
type Errors map[string]string

// Rule checks one value. It returns "" when the value is acceptable and a
// human-readable message otherwise. all carries the whole form so rules can
// compare fields.
type Rule func(value string, all Values) string

const (
	MessageRequired      = "This field is required"
	MessageInvalidDate   = "Invalid date format"
	MessageInvalidTime   = "Invalid time format"
	MessageInvalidEmail  = "Invalid email format"
	calendarDateLayout   = "2006-01-02"
	dateTimeMinuteLayout = "2006-01-02T15:04"
	dateTimeSecondLayout = "2006-01-02T15:04:05"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// Required rejects empty and whitespace-only values.
func Required(value string, _ Values) string {
	if strings.TrimSpace(value) == "" {
		return MessageRequired
	}
	return ""
}

// MinLength rejects values shorter than min characters. An empty value fails.
func MinLength(min int) Rule {
	return func(value string, _ Values) string {
		if value == "" || utf8.RuneCountInString(value) < min {
			return fmt.Sprintf("Must be at least %d characters", min)
		}
		return ""
	}
}

// MaxLength rejects values longer than max characters.
func MaxLength(max int) Rule {
	return func(value string, _ Values) string {
		if utf8.RuneCountInString(value) > max {
			return fmt.Sprintf("Must be at most %d characters", max)
		}
		return ""
	}
}

// ValidDate accepts any parseable date or date-time. Empty values pass;
// combine with Required when the field is mandatory.
func ValidDate(value string, _ Values) string {
	if value == "" {
		return ""
	}
	if _, ok := ParseDate(value); !ok {
		return MessageInvalidDate
	}
	return ""
}

// ValidCalendarDate accepts only YYYY-MM-DD. Empty values pass.
func ValidCalendarDate(value string, _ Values) string {
	if value == "" {
		return ""
	}
	if _, err := time.Parse(calendarDateLayout, value); err != nil {
		return MessageInvalidDate
	}
	return ""
}

// ValidClock accepts a 24h HH:MM time of day. Empty values pass.
func ValidClock(value string, _ Values) string {
	if value == "" {
		return ""
	}
	if !clockPattern.MatchString(value) {
		return MessageInvalidTime
	}
	return ""
}

// ValidEmail applies a permissive address check. Empty values pass.
func ValidEmail(value string, _ Values) string {
	if value == "" {
		return ""
	}
	if !emailPattern.MatchString(value) {
		return MessageInvalidEmail
	}
	return ""
}

// OneOf restricts a value to a fixed set. Empty values pass.
func OneOf(options ...string) Rule {
	allowed := make(map[string]struct{}, len(options))
	for _, opt := range options {
		allowed[opt] = struct{}{}
	}
	message := fmt.Sprintf("Must be one of: %s", strings.Join(options, ", "))
	return func(value string, _ Values) string {
		if value == "" {
			return ""
		}
		if _, ok := allowed[value]; !ok {
			return message
		}
		return ""
	}
}

// ParseDate parses the date shapes a user is likely to type.
func ParseDate(value string) (time.Time, bool) {
	layouts := []string{
		calendarDateLayout,
		dateTimeMinuteLayout,
		dateTimeSecondLayout,
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
