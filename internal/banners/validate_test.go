package banners

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/banner-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/banner-admin/pkg/errors"
)

func TestValidateAcceptsCompleteRecord(t *testing.T) {
	assert.Empty(t, Validate(validBanner(1)))
}

func TestValidateMessages(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Banner)
		field  string
		msg    string
	}{
		{"missing group", func(b *Banner) { b.Group = "" }, "group", "Banner group is required."},
		{"unknown group", func(b *Banner) { b.Group = "Group 9" }, "group", "Banner group is invalid."},
		{"blank name", func(b *Banner) { b.Name = "   " }, "name", "Banner name is required."},
		{"blank link", func(b *Banner) { b.Link = "" }, "link", "Banner link is required."},
		{"zero order", func(b *Banner) { b.Order = 0 }, "order", "Order min 1."},
		{"negative order", func(b *Banner) { b.Order = -3 }, "order", "Order min 1."},
		{"text1", func(b *Banner) { b.Text1 = "" }, "text1", "Text 1 is required."},
		{"text2", func(b *Banner) { b.Text2 = "\t" }, "text2", "Text 2 is required."},
		{"text3", func(b *Banner) { b.Text3 = "" }, "text3", "Text 3 is required."},
		{"image", func(b *Banner) { b.Image = Image{FileName: "x.png"} }, "image", "Banner image is required."},
		{"status", func(b *Banner) { b.Status = "paused" }, "status", "Banner status is invalid."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBanner(1)
			tc.mutate(&b)
			errs := Validate(b)
			require.Len(t, errs, 1)
			assert.Equal(t, tc.msg, errs[tc.field])
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	errs := Validate(Banner{Status: enums.BannerStatusActive})
	assert.Len(t, errs, 8)
	for _, field := range []string{"group", "name", "link", "order", "text1", "text2", "text3", "image"} {
		assert.Contains(t, errs, field)
	}
}

func TestFieldErrorsErr(t *testing.T) {
	assert.NoError(t, FieldErrors{}.Err())

	err := FieldErrors{"name": "Banner name is required."}.Err()
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, map[string]string{"name": "Banner name is required."}, typed.Details())
}

func TestFieldErrorsFrom(t *testing.T) {
	errs := FieldErrors{"order": "Order min 1."}
	assert.Equal(t, errs, FieldErrorsFrom(errs.Err()))
	assert.Nil(t, FieldErrorsFrom(pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")))
	assert.Nil(t, FieldErrorsFrom(nil))
}
