package registration

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormClosed is returned by any operation on a submitted or cancelled form.
var ErrFormClosed = errors.New("registration form is no longer editable")

// State is the lifecycle position of a Form.
type State int

const (
	StateEditing State = iota
	StateSubmitted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitted:
		return "submitted"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// OutcomeKind tags an Outcome.
type OutcomeKind int

const (
	OutcomeSubmitted OutcomeKind = iota + 1
	OutcomeCancelled
)

// Outcome is the result of a finished interaction. Draft is set only for
// OutcomeSubmitted.
type Outcome struct {
	Kind  OutcomeKind
	Draft Draft
}

// ValidationError carries every field error found by a submit attempt.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range Fields {
		if err, ok := e.Fields[f]; ok {
			msgs = append(msgs, err.Error())
		}
	}
	return strings.Join(msgs, "; ")
}

// Form holds the local state of one registration interaction.
type Form struct {
	draft  Draft
	errors FieldErrors
	state  State
}

// NewForm returns an empty form in the editing state.
func NewForm() *Form {
	return &Form{errors: FieldErrors{}}
}

// State reports where the form is in its lifecycle.
func (f *Form) State() State {
	return f.state
}

// Draft returns the current input.
func (f *Form) Draft() Draft {
	return f.draft
}

// Error returns the error displayed for field, or nil.
func (f *Form) Error(field Field) error {
	return f.errors[field]
}

// Errors returns a copy of the displayed field errors.
func (f *Form) Errors() FieldErrors {
	out := make(FieldErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Set updates one field and clears that field's error. Other fields and
// their errors are untouched; nothing is re-validated.
func (f *Form) Set(field Field, value string) error {
	if f.state != StateEditing {
		return ErrFormClosed
	}

	switch field {
	case FieldName:
		f.draft.Name = value
	case FieldIPAddress:
		f.draft.IPAddress = value
	default:
		return fmt.Errorf("unknown registration field %q", field)
	}

	delete(f.errors, field)
	return nil
}

// Submit validates the whole draft. On success the form becomes submitted
// and the untrimmed draft is returned. On failure the form stays editable,
// every failing field shows its error and a *ValidationError is returned.
func (f *Form) Submit() (Outcome, error) {
	if f.state != StateEditing {
		return Outcome{}, ErrFormClosed
	}

	errs := Validate(f.draft)
	if len(errs) > 0 {
		f.errors = errs
		return Outcome{}, &ValidationError{Fields: f.Errors()}
	}

	f.errors = FieldErrors{}
	f.state = StateSubmitted
	return Outcome{Kind: OutcomeSubmitted, Draft: f.draft}, nil
}

// Cancel abandons the interaction and discards the draft.
func (f *Form) Cancel() (Outcome, error) {
	if f.state != StateEditing {
		return Outcome{}, ErrFormClosed
	}

	f.draft = Draft{}
	f.errors = FieldErrors{}
	f.state = StateCancelled
	return Outcome{Kind: OutcomeCancelled}, nil
}
