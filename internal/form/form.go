// Package form holds the editable state of a single inventory record:
// seeding it from the stored item, applying field edits with the same
// coercions an HTML input would, and turning it into one update request.
package form

import (
	"errors"
	"fmt"
	"maps"
	"net/http"

	"github.com/erazemk/zaloga/internal/model"
)

var (
	// ErrSubmitting is returned by Submit while an earlier submission is
	// still outstanding.
	ErrSubmitting = errors.New("form: submission already in progress")
	// ErrNoRecord is returned by Submit when no record is bound.
	ErrNoRecord = errors.New("form: no record bound")
)

// Phase is the submission phase of a form.
type Phase int

const (
	// Editing accepts edits and submission.
	Editing Phase = iota
	// Submitting waits for the outcome of an update request.
	Submitting
)

func (p Phase) String() string {
	switch p {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Errors maps a field name to its validation message.
type Errors map[string]string

// UpdateRequest is the HTTP request a submission produces.
type UpdateRequest struct {
	Method string
	Path   string
	Body   Values
}

// Path returns the update path of the item with the given ID.
func Path(id int64) string {
	return fmt.Sprintf("/inventory/%d", id)
}

// Form is the editable copy of one inventory record. It is owned by a
// single caller and is not safe for concurrent use.
type Form struct {
	record     *model.InventoryItem
	categories []model.Category

	// Values holds the current, possibly unsaved, field values.
	Values Values

	errors Errors
	phase  Phase
}

// New creates a form seeded from item. categories are the options of the
// category selector.
func New(item *model.InventoryItem, categories []model.Category) *Form {
	f := &Form{categories: categories}
	f.Reset(item)
	return f
}

// Reset rebinds the form to item, discarding unsaved edits and any errors.
func (f *Form) Reset(item *model.InventoryItem) {
	f.record = item
	f.Values = ValuesOf(item)
	f.errors = nil
}

// Sync is called whenever the upstream record is supplied again. It resets
// the form only when the record reference changed and reports whether it did.
func (f *Form) Sync(item *model.InventoryItem) bool {
	if item == f.record {
		return false
	}
	f.Reset(item)
	return true
}

// SetCategories replaces the category selector options.
func (f *Form) SetCategories(categories []model.Category) {
	f.categories = categories
}

// Record returns the record the form is bound to.
func (f *Form) Record() *model.InventoryItem { return f.record }

// Categories returns the category selector options.
func (f *Form) Categories() []model.Category { return f.categories }

// Phase returns the current submission phase.
func (f *Form) Phase() Phase { return f.phase }

// Processing reports whether a submission is outstanding. The submit
// control is disabled while this is true.
func (f *Form) Processing() bool { return f.phase == Submitting }

// Submit starts a submission and returns the single update request that
// carries the full current field set.
func (f *Form) Submit() (*UpdateRequest, error) {
	if f.phase == Submitting {
		return nil, ErrSubmitting
	}
	if f.record == nil {
		return nil, ErrNoRecord
	}
	f.phase = Submitting
	return &UpdateRequest{
		Method: http.MethodPut,
		Path:   Path(f.record.ID),
		Body:   f.Values.clone(),
	}, nil
}

// Complete reports the outcome of the outstanding submission. An empty
// error map means the update was accepted and reports true. Otherwise the
// errors are kept for inline display and the form returns to editing.
func (f *Form) Complete(errs Errors) bool {
	f.phase = Editing
	if len(errs) == 0 {
		f.errors = nil
		return true
	}
	f.errors = maps.Clone(errs)
	return false
}

// Abort returns to editing after a submission failed without a
// validation outcome, keeping the current values and errors.
func (f *Form) Abort() {
	f.phase = Editing
}

// Error returns the inline message for field, or "".
func (f *Form) Error(field string) string {
	return f.errors[field]
}

// Errors returns a copy of all field errors.
func (f *Form) Errors() Errors {
	return maps.Clone(f.errors)
}

// HasErrors reports whether any field error is shown.
func (f *Form) HasErrors() bool {
	return len(f.errors) > 0
}
