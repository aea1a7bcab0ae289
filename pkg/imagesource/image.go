// Package imagesource loads, validates and saves the images ClearView works on.
package imagesource

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WEBP decoder
)

// Supported MIME types.
const (
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
	MIMEWEBP = "image/webp"
)

// ErrMalformedDataURL is returned when a data URL cannot be split into MIME type and payload.
var ErrMalformedDataURL = errors.New("malformed data URL")

// Image is an addressable raster image held in memory.
type Image struct {
	Name     string // Original file name, informational only
	MIMEType string
	Data     []byte
	Width    int // Pixel width, 0 when unknown
	Height   int // Pixel height, 0 when unknown
}

// Empty reports whether the image has no data.
func (i Image) Empty() bool {
	return len(i.Data) == 0
}

// Ext returns the file extension for the image, taken from the MIME subtype.
func (i Image) Ext() string {
	_, sub, ok := strings.Cut(i.MIMEType, "/")
	if !ok || sub == "" {
		return "bin"
	}
	return sub
}

// Size returns the pixel size of the image.
func (i Image) Size() image.Point {
	return image.Pt(i.Width, i.Height)
}

// DataURL encodes the image as a base64 data URL.
func (i Image) DataURL() string {
	return "data:" + i.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Decode decodes the image, applying EXIF orientation when present.
func (i Image) Decode() (image.Image, error) {
	if i.Empty() {
		return nil, fmt.Errorf("decoding %s: %w", i.Name, ErrEmpty)
	}
	img, err := imaging.Decode(bytes.NewReader(i.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", i.Name, err)
	}
	return img, nil
}

// WithDimensions returns a copy of the image with Width and Height read from its header.
func (i Image) WithDimensions() (Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(i.Data))
	if err != nil {
		return i, fmt.Errorf("reading dimensions: %w", err)
	}
	i.Width, i.Height = cfg.Width, cfg.Height
	return i, nil
}

// ParseDataURL decodes a data URL of the form data:<mime>;base64,<payload>.
func ParseDataURL(s string) (Image, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return Image{}, ErrMalformedDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || payload == "" {
		return Image{}, ErrMalformedDataURL
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok || mimeType == "" {
		return Image{}, ErrMalformedDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrMalformedDataURL, err)
	}
	return Image{MIMEType: mimeType, Data: data}, nil
}
