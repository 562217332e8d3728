// Package forms drives the add/edit dialogs: a draft, its validation and
// the open/edit/submit/cancel lifecycle.
package forms

import (
	"errors"
	"fmt"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
)

var ErrInvalidTransition = errors.New("invalid form transition")

// State of a form dialog.
type State int

const (
	Closed State = iota
	Open
	Editing
	Submitting
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Definition describes one kind of form: how to build a draft, check it
// and turn it into a record.
type Definition[D, R any] struct {
	Empty     func() D
	Prefill   func(R) D
	Validate  func(D) core.FieldErrors
	Normalize func(draft D, existing *R) R
}

// Form owns one draft exclusively. It is not safe for concurrent use.
type Form[D, R any] struct {
	def      Definition[D, R]
	state    State
	draft    D
	existing *R
	errs     core.FieldErrors

	onSubmitted func(R)
	onClose     func()
}

// New returns a closed form. onSubmitted runs once per successful submit;
// onClose runs whenever the dialog closes. Either may be nil.
func New[D, R any](def Definition[D, R], onSubmitted func(R), onClose func()) *Form[D, R] {
	f := &Form[D, R]{def: def, onSubmitted: onSubmitted, onClose: onClose}
	f.reset(nil)
	return f
}

func (f *Form[D, R]) State() State             { return f.state }
func (f *Form[D, R]) Draft() D                 { return f.draft }
func (f *Form[D, R]) Errors() core.FieldErrors { return f.errs }
func (f *Form[D, R]) IsEdit() bool             { return f.existing != nil }

// Open shows the dialog with an empty draft, or one prefilled from existing.
// Calling it again for another record replaces the draft entirely.
func (f *Form[D, R]) Open(existing *R) error {
	if f.state == Submitting {
		return fmt.Errorf("open while %s: %w", f.state, ErrInvalidTransition)
	}
	f.reset(existing)
	f.state = Open
	return nil
}

// Edit applies a change to the draft.
func (f *Form[D, R]) Edit(change func(*D)) error {
	if f.state != Open && f.state != Editing {
		return fmt.Errorf("edit while %s: %w", f.state, ErrInvalidTransition)
	}
	change(&f.draft)
	f.state = Editing
	return nil
}

// Submit validates the draft. On failure the form stays editable with the
// draft untouched and the error wraps a *core.ValidationError. On success the
// record is handed to onSubmitted and the form closes.
func (f *Form[D, R]) Submit() (R, error) {
	var zero R
	if f.state != Open && f.state != Editing {
		return zero, fmt.Errorf("submit while %s: %w", f.state, ErrInvalidTransition)
	}
	f.state = Submitting

	errs := f.def.Validate(f.draft)
	if err := errs.Err(); err != nil {
		f.errs = errs
		f.state = Editing
		return zero, err
	}

	rec := f.def.Normalize(f.draft, f.existing)
	if f.onSubmitted != nil {
		f.onSubmitted(rec)
	}
	f.close()
	return rec, nil
}

// Cancel discards the draft and closes the dialog.
func (f *Form[D, R]) Cancel() error {
	if f.state == Closed || f.state == Submitting {
		return fmt.Errorf("cancel while %s: %w", f.state, ErrInvalidTransition)
	}
	f.close()
	return nil
}

// Dismiss is a backdrop close. It behaves like Cancel.
func (f *Form[D, R]) Dismiss() error { return f.Cancel() }

func (f *Form[D, R]) close() {
	f.reset(nil)
	f.state = Closed
	if f.onClose != nil {
		f.onClose()
	}
}

func (f *Form[D, R]) reset(existing *R) {
	f.errs = core.FieldErrors{}
	f.existing = nil
	if existing != nil {
		cp := *existing
		f.existing = &cp
		f.draft = f.def.Prefill(cp)
		return
	}
	f.draft = f.def.Empty()
}
