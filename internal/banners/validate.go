package banners

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/angelmondragon/banner-admin/pkg/enums"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("banner_group", func(fl validator.FieldLevel) bool {
		return enums.BannerGroup(fl.Field().String()).IsValid()
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		b, ok := sl.Current().Interface().(Banner)
		if !ok {
			return
		}
		if b.Image.URL == "" {
			sl.ReportError(b.Image.URL, "image", "Image", "required", "")
		}
	}, Banner{})
	return v
}

var fieldMessages = map[string]string{
	"group": "Banner group is required.",
	"name":  "Banner name is required.",
	"link":  "Banner link is required.",
	"order": "Order min 1.",
	"text1": "Text 1 is required.",
	"text2": "Text 2 is required.",
	"text3": "Text 3 is required.",
	"image": "Banner image is required.",
}

// Validate checks a record against the form rules and returns one message
// per failing field. A nil map means the record is valid.
func Validate(b Banner) FieldErrors {
	err := validate.Struct(b)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return FieldErrors{"_": err.Error()}
	}
	out := FieldErrors{}
	for _, fe := range errs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = validationMessage(field, fe.Tag())
	}
	return out
}

func validationMessage(field, tag string) string {
	switch {
	case field == "group" && tag == "banner_group":
		return "Banner group is invalid."
	case field == "status":
		return "Banner status is invalid."
	}
	if msg, ok := fieldMessages[field]; ok {
		return msg
	}
	return "is invalid"
}
