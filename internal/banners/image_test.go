package banners

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/banner-admin/pkg/errors"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestEncodeImagePNG(t *testing.T) {
	img, err := EncodeImage(`C:\uploads\promo.png`, bytes.NewReader(pngHeader), 1<<20)
	require.NoError(t, err)

	assert.Equal(t, "promo.png", img.FileName)
	require.True(t, strings.HasPrefix(img.URL, "data:image/png;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(img.URL, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, raw)
}

func TestEncodeImageRejects(t *testing.T) {
	cases := []struct {
		name string
		body []byte
		max  int64
		msg  string
	}{
		{"empty", nil, 1024, "Banner image is required."},
		{"too large", bytes.Repeat([]byte{0xff}, 2048), 1024, "Banner image must be at most 1KB."},
		{"not an image", []byte("hello, plain text"), 1024, "Banner image must be a gif, jpeg, png or webp."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EncodeImage("x", bytes.NewReader(tc.body), tc.max)
			require.Error(t, err)
			assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, map[string]string{"image": tc.msg}, typed.Details())
		})
	}
}

func TestEncodeImageDefaultLimit(t *testing.T) {
	img, err := EncodeImage("", bytes.NewReader(pngHeader), 0)
	require.NoError(t, err)
	assert.Equal(t, "image", img.FileName)
}
