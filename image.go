package impressionist

import (
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// validExtensions lists the export formats supported by the encoder.
var validExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff"}

// decodeImg decodes the source photo, applying its EXIF orientation, and
// converts it to NRGBA with the min-point at (0, 0).
func decodeImg(r io.Reader) (*image.NRGBA, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "could not decode the source image")
	}
	return imaging.Clone(src), nil
}

// encodeImg encodes the painting to w. The format is derived from the
// destination file name; anything else, such as a pipe, gets PNG.
func encodeImg(w io.Writer, img image.Image) error {
	format := imaging.PNG

	if f, ok := w.(*os.File); ok && f != os.Stdout {
		var err error
		format, err = imaging.FormatFromFilename(f.Name())
		if err != nil {
			return errors.Wrapf(err, "unsupported image format %q", filepath.Ext(f.Name()))
		}
	}
	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(100)); err != nil {
		return errors.Wrap(err, "could not encode the painting")
	}
	return nil
}

// isValidExtension checks for the supported export extensions.
func isValidExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, ex := range validExtensions {
		if ex == ext {
			return true
		}
	}
	return false
}
