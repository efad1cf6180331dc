package preview

import (
	"bytes"
	"image"
	"image/png"
	"io"

	"github.com/HugoSmits86/nativewebp"

	"github.com/matzehuels/keyforge/pkg/errors"
)

// Image formats accepted by Encode.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported image format %q (must be png or webp)", format)
}

// EncodeBytes is Encode into a new byte slice.
func EncodeBytes(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
