package banners

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	pkgerrors "github.com/angelmondragon/banner-admin/pkg/errors"
)

var allowedImageTypes = []string{"image/gif", "image/jpeg", "image/png", "image/webp"}

// EncodeImage reads an uploaded file into a data URL. The content type is
// sniffed from the bytes, not trusted from the client.
func EncodeImage(fileName string, r io.Reader, maxBytes int64) (Image, error) {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return Image{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read image")
	}
	if len(data) == 0 {
		return Image{}, imageError("Banner image is required.")
	}
	if int64(len(data)) > maxBytes {
		return Image{}, imageError(fmt.Sprintf("Banner image must be at most %s.", humanSize(maxBytes)))
	}

	mediaType, err := sniffImageType(data)
	if err != nil {
		return Image{}, imageError(err.Error())
	}

	return Image{
		URL:      "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data),
		FileName: cleanFileName(fileName),
	}, nil
}

func sniffImageType(data []byte) (string, error) {
	mediaType, _, err := mime.ParseMediaType(mimetype.Detect(data).String())
	if err != nil {
		return "", errors.New("Banner image type could not be detected.")
	}
	mediaType = strings.ToLower(mediaType)
	if !slices.Contains(allowedImageTypes, mediaType) {
		return "", errors.New("Banner image must be a gif, jpeg, png or webp.")
	}
	return mediaType, nil
}

func cleanFileName(name string) string {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if base == "." || base == "/" {
		return "image"
	}
	return base
}

func humanSize(n int64) string {
	if n%(1<<20) == 0 {
		return fmt.Sprintf("%dMB", n>>20)
	}
	if n%(1<<10) == 0 {
		return fmt.Sprintf("%dKB", n>>10)
	}
	return fmt.Sprintf("%d bytes", n)
}

func imageError(msg string) error {
	return FieldErrors{"image": msg}.Err()
}
