// Package validation composes per-field rule chains into reusable validators
// and provides the form submission protocol used by the CLI.
package validation

import (
	"sort"
	"strings"
)

// Schema maps a field name to its ordered rule chain.
type Schema map[string][]Rule

// Engine runs a Schema. It holds no state besides the schema and is safe to
// share.
type Engine struct {
	schema Schema
}

// NewEngine creates an engine for the given schema.
func NewEngine(schema Schema) *Engine {
	return &Engine{schema: schema}
}

// Fields returns the configured field names in sorted order.
func (e *Engine) Fields() []string {
	fields := make([]string, 0, len(e.schema))
	for field := range e.schema {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Validate runs the rules for one field and returns the first failure, or ""
// when every rule passes or the field has no rules. Rules see the value with
// surrounding whitespace removed, the same form in which it is stored.
func (e *Engine) Validate(field, value string, all Values) string {
	value = strings.TrimSpace(value)
	for _, rule := range e.schema[field] {
		if msg := rule(value, all); msg != "" {
			return msg
		}
	}
	return ""
}

// ValidateAll validates every configured field independently. The returned
// map only contains failing fields.
func (e *Engine) ValidateAll(values Values) (Errors, bool) {
	errs := make(Errors)
	for field := range e.schema {
		if msg := e.Validate(field, values[field], values); msg != "" {
			errs[field] = msg
		}
	}
	return errs, len(errs) == 0
}

// Check is ValidateAll returning a *ValidationError, or nil when valid.
func (e *Engine) Check(values Values) error {
	errs, ok := e.ValidateAll(values)
	if ok {
		return nil
	}
	return FromFieldMessages(errs, values)
}
