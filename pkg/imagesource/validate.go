package imagesource

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultMaxBytes is the default upload size limit.
const DefaultMaxBytes int64 = 5 << 20

// AllowedMIMETypes is the default upload allowlist.
var AllowedMIMETypes = []string{MIMEJPEG, MIMEPNG, MIMEWEBP}

// Upload errors.
var (
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnreadable      = errors.New("error reading file")
	ErrEmpty           = errors.New("empty image")
)

// Validator enforces the upload allowlist and size limit.
type Validator struct {
	maxBytes int64
	allowed  []string
}

// NewValidator creates a Validator with the default allowlist.
// A maxBytes of zero or less selects DefaultMaxBytes.
func NewValidator(maxBytes int64) *Validator {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Validator{maxBytes: maxBytes, allowed: AllowedMIMETypes}
}

// MaxBytes returns the upload size limit.
func (v *Validator) MaxBytes() int64 {
	return v.maxBytes
}

// MaxMB returns the upload size limit in whole megabytes, rounded up so a
// limit below 1 MiB reads as 1MB.
func (v *Validator) MaxMB() int64 {
	return (v.maxBytes + 1<<20 - 1) >> 20
}

// Check validates a declared MIME type and byte size.
func (v *Validator) Check(mimeType string, size int64) error {
	if !slices.Contains(v.allowed, mimeType) {
		return fmt.Errorf("%w: %q", ErrInvalidFileType, mimeType)
	}
	if size > v.maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, size, v.maxBytes)
	}
	if size == 0 {
		return ErrEmpty
	}
	return nil
}

// Load reads an image from r, validates it and fills in its pixel dimensions.
// name is used for extension-based MIME detection when sniffing fails.
func (v *Validator) Load(name string, r io.Reader) (Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, v.maxBytes+1))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	img := Image{Name: filepath.Base(name), MIMEType: DetectMIME(name, data), Data: data}
	if err := v.Check(img.MIMEType, int64(len(data))); err != nil {
		return Image{}, err
	}

	img, err = img.WithDimensions()
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrInvalidFileType, err)
	}
	return img, nil
}

// LoadFile loads and validates the image at path. The size limit is checked
// before the file is read.
func (v *Validator) LoadFile(path string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	if st, err := f.Stat(); err == nil && st.Size() > v.maxBytes {
		return Image{}, fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, st.Size(), v.maxBytes)
	}
	return v.Load(path, f)
}

// Message translates an upload error into the text shown to the user.
func (v *Validator) Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidFileType), errors.Is(err, ErrEmpty):
		return "Please upload a valid image file (JPEG, PNG, WEBP)."
	case errors.Is(err, ErrFileTooLarge):
		return fmt.Sprintf("File size too large. Please upload an image under %dMB.", v.MaxMB())
	case errors.Is(err, ErrMalformedDataURL):
		return "Failed to process image format."
	default:
		return "Error reading file."
	}
}

// DetectMIME sniffs the content type of data, falling back to the file extension.
func DetectMIME(name string, data []byte) string {
	sniffed := http.DetectContentType(data)
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		mediaType, _, err := mime.ParseMediaType(byExt)
		if err == nil {
			return mediaType
		}
	}
	return sniffed
}
