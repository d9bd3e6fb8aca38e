package validation

import (
	"context"
	"errors"
	"sync"
)

// ErrSubmitInProgress is returned when Submit is called while a previous
// submission's effect is still running.
var ErrSubmitInProgress = errors.New("form submission already in progress")

// Form keeps user input, live field errors and the submitting flag for one
// input form.
type Form struct {
	mu         sync.Mutex
	engine     *Engine
	initial    Values
	values     Values
	errors     Errors
	valid      bool
	submitting bool
}

// NewForm creates a form seeded with initial values.
func NewForm(engine *Engine, initial Values) *Form {
	return &Form{
		engine:  engine,
		initial: copyValues(initial),
		values:  copyValues(initial),
		errors:  make(Errors),
	}
}

// Values returns a copy of the current input.
func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyValues(f.values)
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(Errors, len(f.errors))
	for k, v := range f.errors {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Change updates one field and re-validates just that field.
func (f *Form) Change(field, value string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[field] = value
	msg := f.engine.Validate(field, value, f.values)
	f.errors[field] = msg
	return msg
}

// SetValues replaces the input wholesale without validating, e.g. when a
// stored record is loaded for editing.
func (f *Form) SetValues(values Values) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = copyValues(values)
}

// IsSubmitting reports whether a submission effect is running.
func (f *Form) IsSubmitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// IsValid reports the outcome of the last full validation.
func (f *Form) IsValid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.valid
}

// Submit validates every field and, only when all pass, runs effect with a
// snapshot of the values. The submitting flag is held for the duration of the
// effect and released on every path. A failing effect leaves the input as
// it was.
func (f *Form) Submit(ctx context.Context, effect func(ctx context.Context, values Values) error) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInProgress
	}
	f.submitting = true
	errs, ok := f.engine.ValidateAll(f.values)
	f.errors = errs
	f.valid = ok
	snapshot := copyValues(f.values)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	if !ok {
		return FromFieldMessages(errs, snapshot)
	}
	return effect(ctx, snapshot)
}

// Reset restores the initial values and clears errors.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = copyValues(f.initial)
	f.errors = make(Errors)
	f.valid = false
}

func copyValues(in Values) Values {
	out := make(Values, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
