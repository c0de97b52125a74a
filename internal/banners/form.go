package banners

import (
	"context"
	"fmt"

	"github.com/angelmondragon/banner-admin/pkg/enums"
)

// SubmitFunc receives a validated record and returns it as stored.
type SubmitFunc func(ctx context.Context, record Banner) (Banner, error)

// Form holds the fields of a single banner while it is being edited.
type Form struct {
	data    Banner
	editing bool
	errors  FieldErrors
}

// FormState is a read-only snapshot of a form, used for rendering.
type FormState struct {
	Data    Banner
	Editing bool
	Errors  FieldErrors
}

// NewForm opens a form. A non-nil initial record with an id pre-fills every
// field and puts the form in edit mode; anything else starts from a fresh
// draft with a random id that does not collide with existing.
func NewForm(initial *Banner, existing []Banner, ids *IDGenerator) (*Form, error) {
	if initial != nil && initial.HasID() {
		return &Form{data: initial.clone(), editing: true}, nil
	}
	if ids == nil {
		ids = NewIDGenerator(nil)
	}
	id, err := ids.Generate(existing)
	if err != nil {
		return nil, fmt.Errorf("generate draft id: %w", err)
	}

	data := Banner{Status: enums.BannerStatusActive}
	if initial != nil {
		data = initial.clone()
		if data.Status == "" {
			data.Status = enums.BannerStatusActive
		}
	}
	data.ID = &id
	return &Form{data: data}, nil
}

// Data returns a copy of the current record.
func (f *Form) Data() Banner {
	return f.data.clone()
}

// Editing reports whether the form was opened on an existing record.
func (f *Form) Editing() bool {
	return f.editing
}

// Errors returns the messages produced by the last validation.
func (f *Form) Errors() FieldErrors {
	return f.errors
}

// State snapshots the form.
func (f *Form) State() FormState {
	errs := make(FieldErrors, len(f.errors))
	for k, v := range f.errors {
		errs[k] = v
	}
	return FormState{Data: f.Data(), Editing: f.editing, Errors: errs}
}

// Apply overwrites the editable fields. The id and creation date are never
// touched.
func (f *Form) Apply(in FormInput) {
	f.data.Group = in.Group
	f.data.Name = in.Name
	f.data.Link = in.Link
	f.data.Order = in.Order
	f.data.Text1 = in.Text1
	f.data.Text2 = in.Text2
	f.data.Text3 = in.Text3
	f.data.Status = in.Status
	if f.data.Status == "" {
		f.data.Status = enums.BannerStatusActive
	}
	if in.Image != nil {
		f.data.Image = *in.Image
	}
}

// SetImage replaces the image; the most recent upload wins.
func (f *Form) SetImage(img Image) {
	f.data.Image = img
}

// RemoveImage clears the image.
func (f *Form) RemoveImage() {
	f.data.Image = Image{}
}

// Validate records and returns the field errors for the current data.
func (f *Form) Validate() FieldErrors {
	f.errors = Validate(f.data)
	return f.errors
}

// Submit validates the form and, only when it is valid, hands the record to
// onSubmit.
func (f *Form) Submit(ctx context.Context, onSubmit SubmitFunc) (Banner, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return Banner{}, errs.Err()
	}
	if onSubmit == nil {
		return f.Data(), nil
	}
	return onSubmit(ctx, f.Data())
}
