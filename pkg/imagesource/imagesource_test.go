package imagesource

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestValidatorCheck(t *testing.T) {
	v := NewValidator(0)
	assert.Equal(t, DefaultMaxBytes, v.MaxBytes())

	tests := []struct {
		name    string
		mime    string
		size    int64
		wantErr error
	}{
		{"jpeg ok", MIMEJPEG, 1024, nil},
		{"png ok", MIMEPNG, 1024, nil},
		{"webp ok", MIMEWEBP, 1024, nil},
		{"gif rejected", "image/gif", 1024, ErrInvalidFileType},
		{"text rejected", "text/plain", 10, ErrInvalidFileType},
		{"exactly at limit", MIMEPNG, DefaultMaxBytes, nil},
		{"over limit", MIMEPNG, DefaultMaxBytes + 1, ErrFileTooLarge},
		{"empty", MIMEPNG, 0, ErrEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Check(tt.mime, tt.size)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidatorLoad(t *testing.T) {
	v := NewValidator(1 << 20)

	t.Run("PNG", func(t *testing.T) {
		img, err := v.Load("photo.png", bytes.NewReader(encodePNG(t, 40, 30)))
		require.NoError(t, err)
		assert.Equal(t, MIMEPNG, img.MIMEType)
		assert.Equal(t, "photo.png", img.Name)
		assert.Equal(t, 40, img.Width)
		assert.Equal(t, 30, img.Height)
	})

	t.Run("JPEGWithWrongExtension", func(t *testing.T) {
		img, err := v.Load("photo.png", bytes.NewReader(encodeJPEG(t, 16, 8)))
		require.NoError(t, err)
		assert.Equal(t, MIMEJPEG, img.MIMEType)
		assert.Equal(t, image.Pt(16, 8), img.Size())
	})

	t.Run("TextFile", func(t *testing.T) {
		_, err := v.Load("notes.txt", strings.NewReader("hello world"))
		assert.ErrorIs(t, err, ErrInvalidFileType)
	})

	t.Run("GarbageWithImageExtension", func(t *testing.T) {
		_, err := v.Load("fake.png", strings.NewReader("definitely not a png"))
		assert.ErrorIs(t, err, ErrInvalidFileType)
	})

	t.Run("TooLarge", func(t *testing.T) {
		small := NewValidator(20)
		_, err := small.Load("big.png", bytes.NewReader(encodePNG(t, 64, 64)))
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})
}

func TestValidatorLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 10, 20), 0644))

	img, err := NewValidator(0).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Width)
	assert.Equal(t, 20, img.Height)

	_, err = NewValidator(10).LoadFile(path)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = NewValidator(0).LoadFile(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestValidatorMessage(t *testing.T) {
	v := NewValidator(5 << 20)
	assert.Empty(t, v.Message(nil))
	assert.Equal(t, "Please upload a valid image file (JPEG, PNG, WEBP).", v.Message(v.Check("image/gif", 1)))
	assert.Equal(t, "File size too large. Please upload an image under 5MB.", v.Message(v.Check(MIMEPNG, 6<<20)))
	assert.Equal(t, "Failed to process image format.", v.Message(ErrMalformedDataURL))
	assert.Equal(t, "Error reading file.", v.Message(ErrUnreadable))

	small := NewValidator(512 << 10)
	assert.Equal(t, int64(1), small.MaxMB())
	assert.Equal(t, "File size too large. Please upload an image under 1MB.", small.Message(small.Check(MIMEPNG, 1<<20)))
	assert.Equal(t, int64(2), NewValidator(1<<20+1).MaxMB())
	assert.Equal(t, int64(5), v.MaxMB())
}

func TestDataURL(t *testing.T) {
	img := Image{MIMEType: MIMEPNG, Data: []byte{1, 2, 3, 4}}
	url := img.DataURL()
	assert.Equal(t, "data:image/png;base64,AQIDBA==", url)

	parsed, err := ParseDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, img.MIMEType, parsed.MIMEType)
	assert.Equal(t, img.Data, parsed.Data)

	for _, bad := range []string{
		"",
		"image/png;base64,AQID",
		"data:image/png,AQID",
		"data:;base64,AQID",
		"data:image/png;base64,",
		"data:image/png;base64,!!!",
	} {
		_, err := ParseDataURL(bad)
		assert.ErrorIs(t, err, ErrMalformedDataURL, bad)
	}
}

func TestDecode(t *testing.T) {
	img := Image{Name: "a.png", MIMEType: MIMEPNG, Data: encodePNG(t, 12, 7)}
	decoded, err := img.Decode()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 7), decoded.Bounds())

	_, err = Image{}.Decode()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestDownload(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	img := Image{MIMEType: MIMEJPEG, Data: []byte("jpeg-bytes")}
	assert.Equal(t, "clearview-cleaned-1700000000123.jpeg", DownloadName(img, now))
	assert.Equal(t, "clearview-cleaned-1700000000123.webp", DownloadName(Image{MIMEType: MIMEWEBP}, now))
	assert.Equal(t, "bin", Image{}.Ext())

	dir := filepath.Join(t.TempDir(), "nested")
	path, err := Save(dir, img, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "clearview-cleaned-1700000000123.jpeg"), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, img.Data, written)

	_, err = Save(dir, Image{}, now)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestCleanedName(t *testing.T) {
	cleaned := Image{MIMEType: MIMEPNG, Data: []byte("x")}
	assert.Equal(t, "photo", Stem("/tmp/photo.jpg"))
	assert.Equal(t, "archive.v2", Stem("archive.v2.webp"))
	assert.Equal(t, "noext", Stem("noext"))
	assert.Equal(t, "photo-cleaned.png", CleanedName(Stem("/tmp/photo.jpg"), cleaned))
	assert.Equal(t, "photo-2-cleaned.png", CleanedName("photo-2", cleaned))

	dir := t.TempDir()
	path, err := SaveAs(dir, CleanedName(Stem("photo.jpg"), cleaned), cleaned)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "photo-cleaned.png"), path)
}
