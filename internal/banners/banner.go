package banners

import (
	"slices"

	"github.com/angelmondragon/banner-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/banner-admin/pkg/errors"
)

// Field length limits, counted in runes.
const (
	MaxGroupLen  = 32
	MaxNameLen   = 200
	MaxLinkLen   = 2048
	MaxTextLen   = 500
	MaxStatusLen = 16
)

// DateLayout is the creation timestamp format (UTC, millisecond precision).
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// Image references the banner artwork, usually a data URL built from an upload.
type Image struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

// Banner is a single promotional record.
type Banner struct {
	ID     *int               `json:"id"`
	Group  enums.BannerGroup  `json:"group" validate:"required,banner_group"`
	Name   string             `json:"name" validate:"notblank"`
	Link   string             `json:"link" validate:"notblank"`
	Order  int                `json:"order" validate:"min=1"`
	Text1  string             `json:"text1" validate:"notblank"`
	Text2  string             `json:"text2" validate:"notblank"`
	Text3  string             `json:"text3" validate:"notblank"`
	Date   string             `json:"date,omitempty"`
	Image  Image              `json:"image"`
	Status enums.BannerStatus `json:"status" validate:"oneof=active inactive"`
}

// HasID reports whether the record carries an identifier.
func (b Banner) HasID() bool {
	return b.ID != nil
}

// IDValue returns the identifier or zero when unset.
func (b Banner) IDValue() int {
	if b.ID == nil {
		return 0
	}
	return *b.ID
}

// Active reports whether the banner is served publicly.
func (b Banner) Active() bool {
	return b.Status == enums.BannerStatusActive
}

func (b Banner) clone() Banner {
	out := b
	if b.ID != nil {
		id := *b.ID
		out.ID = &id
	}
	return out
}

func cloneAll(in []Banner) []Banner {
	out := make([]Banner, len(in))
	for i, b := range in {
		out[i] = b.clone()
	}
	return out
}

// FieldErrors maps a field's JSON name to a human readable message.
type FieldErrors map[string]string

// Err converts the field errors into a validation error, or nil when empty.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	details := make(map[string]string, len(f))
	for k, v := range f {
		details[k] = v
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "banner is invalid").WithDetails(details)
}

// FieldErrorsFrom recovers the field errors carried by a validation error.
// It returns nil for any other error.
func FieldErrorsFrom(err error) FieldErrors {
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		return nil
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		return nil
	}
	return FieldErrors(details)
}

// Mode is the table's mutually exclusive view.
type Mode string

const (
	ModeList Mode = "list"
	ModeForm Mode = "form"
)

// FormInput carries the editable fields of a submission. A nil Image keeps
// whatever image the form already holds.
type FormInput struct {
	Group  enums.BannerGroup
	Name   string
	Link   string
	Order  int
	Text1  string
	Text2  string
	Text3  string
	Status enums.BannerStatus
	Image  *Image
}

// InputFrom copies a record's editable fields into a FormInput.
func InputFrom(b Banner) FormInput {
	img := b.Image
	return FormInput{
		Group:  b.Group,
		Name:   b.Name,
		Link:   b.Link,
		Order:  b.Order,
		Text1:  b.Text1,
		Text2:  b.Text2,
		Text3:  b.Text3,
		Status: b.Status,
		Image:  &img,
	}
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Group  *enums.BannerGroup
	Name   *string
	Link   *string
	Order  *int
	Text1  *string
	Text2  *string
	Text3  *string
	Status *enums.BannerStatus
	Image  *Image
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Group == nil && p.Name == nil && p.Link == nil && p.Order == nil &&
		p.Text1 == nil && p.Text2 == nil && p.Text3 == nil && p.Status == nil && p.Image == nil
}

func (p Patch) applyTo(in *FormInput) {
	if p.Group != nil {
		in.Group = *p.Group
	}
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Link != nil {
		in.Link = *p.Link
	}
	if p.Order != nil {
		in.Order = *p.Order
	}
	if p.Text1 != nil {
		in.Text1 = *p.Text1
	}
	if p.Text2 != nil {
		in.Text2 = *p.Text2
	}
	if p.Text3 != nil {
		in.Text3 = *p.Text3
	}
	if p.Status != nil {
		in.Status = *p.Status
	}
	if p.Image != nil {
		img := *p.Image
		in.Image = &img
	}
}

// merge copies every editable field of submitted onto existing. The
// identifier and creation date of existing are kept.
func merge(existing, submitted Banner) Banner {
	out := existing.clone()
	out.Group = submitted.Group
	out.Name = submitted.Name
	out.Link = submitted.Link
	out.Order = submitted.Order
	out.Text1 = submitted.Text1
	out.Text2 = submitted.Text2
	out.Text3 = submitted.Text3
	out.Image = submitted.Image
	out.Status = submitted.Status
	return out
}

// SortByOrder sorts in place: higher order first, then higher id first.
func SortByOrder(list []Banner) {
	slices.SortStableFunc(list, func(a, b Banner) int {
		if a.Order != b.Order {
			return b.Order - a.Order
		}
		return b.IDValue() - a.IDValue()
	})
}

func indexOf(list []Banner, id int) int {
	return slices.IndexFunc(list, func(b Banner) bool {
		return b.ID != nil && *b.ID == id
	})
}
