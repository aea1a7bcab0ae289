package compare

import (
	"errors"
	"fmt"
	"image"

	"github.com/dixieflatline76/ClearView/pkg/imagesource"
)

// ErrIncompletePair is returned when either side of a pair has no image data.
var ErrIncompletePair = errors.New("comparison pair needs both images")

// Pair is the before/after image pair shown by a Viewer.
type Pair struct {
	Before imagesource.Image
	After  imagesource.Image

	before image.Image
	after  image.Image
}

// NewPair decodes both images. The Viewer never loads or validates images
// itself, so a Pair is only built once both sides are usable.
func NewPair(before, after imagesource.Image) (Pair, error) {
	if before.Empty() || after.Empty() {
		return Pair{}, ErrIncompletePair
	}
	b, err := before.Decode()
	if err != nil {
		return Pair{}, fmt.Errorf("before image: %w", err)
	}
	a, err := after.Decode()
	if err != nil {
		return Pair{}, fmt.Errorf("after image: %w", err)
	}
	if after.Width == 0 || after.Height == 0 {
		after.Width, after.Height = a.Bounds().Dx(), a.Bounds().Dy()
	}
	if before.Width == 0 || before.Height == 0 {
		before.Width, before.Height = b.Bounds().Dx(), b.Bounds().Dy()
	}
	return Pair{Before: before, After: after, before: b, after: a}, nil
}

// NewPairFromImages builds a Pair from already decoded images.
func NewPairFromImages(before, after image.Image) (Pair, error) {
	if before == nil || after == nil {
		return Pair{}, ErrIncompletePair
	}
	return Pair{
		Before: imagesource.Image{Width: before.Bounds().Dx(), Height: before.Bounds().Dy()},
		After:  imagesource.Image{Width: after.Bounds().Dx(), Height: after.Bounds().Dy()},
		before: before,
		after:  after,
	}, nil
}

// Natural returns the pixel size of the after image, which drives the
// viewport aspect ratio.
func (p Pair) Natural() image.Point {
	return p.After.Size()
}

// Images returns the decoded before and after images.
func (p Pair) Images() (before, after image.Image) {
	return p.before, p.after
}
